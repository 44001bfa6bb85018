package teamdb

import (
	"fmt"

	"github.com/jcpaschoal/manfix/business/domain/teambus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
)

var orderByFields = map[string]string{
	teambus.OrderByID:        "t.team_id",
	teambus.OrderByName:      "t.name",
	teambus.OrderByCreatedAt: "t.created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
