package requestbus

import "github.com/jcpaschoal/manfix/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID            = "request_id"
	OrderBySubject       = "subject"
	OrderByStatus        = "status"
	OrderByType          = "request_type"
	OrderByScheduledDate = "scheduled_date"
	OrderByCreatedAt     = "created_at"
)
