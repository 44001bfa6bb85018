package equipmentdb

import (
	"fmt"

	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
	"github.com/jcpaschoal/manfix/business/sdk/order"
)

var orderByFields = map[string]string{
	equipmentbus.OrderByID:           "e.equipment_id",
	equipmentbus.OrderByName:         "e.name",
	equipmentbus.OrderBySerialNumber: "e.serial_number",
	equipmentbus.OrderByCreatedAt:    "e.created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
