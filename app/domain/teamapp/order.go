package teamapp

import (
	"github.com/jcpaschoal/manfix/business/domain/teambus"
)

var orderByFields = map[string]string{
	"team_id":    teambus.OrderByID,
	"name":       teambus.OrderByName,
	"created_at": teambus.OrderByCreatedAt,
}
