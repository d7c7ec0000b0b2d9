package officeapp

import (
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
)

var orderByFields = map[string]string{
	"office_id": officebus.OrderByID,
	"name":      officebus.OrderByName,
	"enabled":   officebus.OrderByEnabled,
}
