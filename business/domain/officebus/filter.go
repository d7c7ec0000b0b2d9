package officebus

import (
	"github.com/jcpaschoal/whereabouts/business/types/name"
)

type QueryFilter struct {
	ID       *string
	Name     *name.Name
	IsPublic *bool
	Enabled  *bool
}
