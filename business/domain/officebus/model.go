package officebus

import (
	"time"

	"github.com/jcpaschoal/whereabouts/business/types/name"
	"github.com/jcpaschoal/whereabouts/business/types/password"
)

// Office represents one tenant board in the system. The two password hashes
// gate the member and the admin surfaces respectively.
type Office struct {
	ID                string
	Name              name.Name
	PasswordHash      []byte
	AdminPasswordHash []byte
	IsPublic          bool
	Enabled           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewOffice contains information needed to create a new office.
type NewOffice struct {
	ID            string
	Name          name.Name
	Password      password.Password
	AdminPassword password.Password
	IsPublic      bool
}

// UpdateOffice contains information needed to update an office.
type UpdateOffice struct {
	Name          *name.Name
	Password      *password.Password
	AdminPassword *password.Password
	IsPublic      *bool
	Enabled       *bool
}
