package officebus

import "github.com/jcpaschoal/whereabouts/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

const (
	OrderByID      = "office_id"
	OrderByName    = "name"
	OrderByEnabled = "enabled"
)
