package requestapp

import (
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
)

var orderByFields = map[string]string{
	"request_id":     requestbus.OrderByID,
	"subject":        requestbus.OrderBySubject,
	"status":         requestbus.OrderByStatus,
	"request_type":   requestbus.OrderByType,
	"scheduled_date": requestbus.OrderByScheduledDate,
	"created_at":     requestbus.OrderByCreatedAt,
}
