package officedb

import (
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/types/name"
)

type officeDB struct {
	ID            string    `db:"office_id"`
	Name          string    `db:"name"`
	Password      []byte    `db:"password"`
	AdminPassword []byte    `db:"admin_password"`
	IsPublic      bool      `db:"is_public"`
	Enabled       bool      `db:"enabled"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toDBOffice(ofc officebus.Office) officeDB {
	return officeDB{
		ID:            ofc.ID,
		Name:          ofc.Name.String(),
		Password:      ofc.PasswordHash,
		AdminPassword: ofc.AdminPasswordHash,
		IsPublic:      ofc.IsPublic,
		Enabled:       ofc.Enabled,
		CreatedAt:     ofc.CreatedAt.UTC(),
		UpdatedAt:     ofc.UpdatedAt.UTC(),
	}
}

func toBusOffice(db officeDB) (officebus.Office, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return officebus.Office{}, fmt.Errorf("parse name: %w", err)
	}

	ofc := officebus.Office{
		ID:                db.ID,
		Name:              nme,
		PasswordHash:      db.Password,
		AdminPasswordHash: db.AdminPassword,
		IsPublic:          db.IsPublic,
		Enabled:           db.Enabled,
		CreatedAt:         db.CreatedAt.In(time.Local),
		UpdatedAt:         db.UpdatedAt.In(time.Local),
	}

	return ofc, nil
}

func toBusOffices(dbs []officeDB) ([]officebus.Office, error) {
	ofcs := make([]officebus.Office, len(dbs))
	for i, db := range dbs {
		var err error
		ofcs[i], err = toBusOffice(db)
		if err != nil {
			return nil, err
		}
	}

	return ofcs, nil
}
