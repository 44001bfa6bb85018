package requestdb

import (
	"fmt"

	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
)

var orderByFields = map[string]string{
	requestbus.OrderByID:            "request_id",
	requestbus.OrderBySubject:       "subject",
	requestbus.OrderByStatus:        "status",
	requestbus.OrderByType:          "request_type",
	requestbus.OrderByScheduledDate: "scheduled_date",
	requestbus.OrderByCreatedAt:     "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
