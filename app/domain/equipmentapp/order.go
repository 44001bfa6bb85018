package equipmentapp

import (
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
)

var orderByFields = map[string]string{
	"equipment_id":  equipmentbus.OrderByID,
	"name":          equipmentbus.OrderByName,
	"serial_number": equipmentbus.OrderBySerialNumber,
	"created_at":    equipmentbus.OrderByCreatedAt,
}
