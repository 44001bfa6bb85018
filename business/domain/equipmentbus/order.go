package equipmentbus

import "github.com/jcpaschoal/manfix/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID           = "equipment_id"
	OrderByName         = "name"
	OrderBySerialNumber = "serial_number"
	OrderByCreatedAt    = "created_at"
)
