package officeapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/types/name"
	"github.com/jcpaschoal/whereabouts/business/types/password"
)

// Office is one tenant board as sent to clients. Password hashes never leave
// the business layer.
type Office struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPublic  bool   `json:"isPublic"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app Office) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppOffice(ofc officebus.Office) Office {
	return Office{
		ID:        ofc.ID,
		Name:      ofc.Name.String(),
		IsPublic:  ofc.IsPublic,
		Enabled:   ofc.Enabled,
		CreatedAt: ofc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ofc.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppOffices(ofcs []officebus.Office) []Office {
	app := make([]Office, len(ofcs))
	for i, ofc := range ofcs {
		app[i] = toAppOffice(ofc)
	}
	return app
}

// =============================================================================

// NewOffice contains information needed to create a new office.
type NewOffice struct {
	ID            string `json:"id" validate:"required,min=2,max=64"`
	Name          string `json:"name" validate:"required"`
	Password      string `json:"password" validate:"required,min=4"`
	AdminPassword string `json:"adminPassword" validate:"required,min=4"`
	IsPublic      bool   `json:"isPublic"`
}

// Decode implements the web.Decoder interface.
func (app *NewOffice) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewOffice) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewOffice(app NewOffice) (officebus.NewOffice, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return officebus.NewOffice{}, fmt.Errorf("parse name: %w", err)
	}

	pw, err := password.Parse(app.Password)
	if err != nil {
		return officebus.NewOffice{}, fmt.Errorf("parse password: %w", err)
	}

	apw, err := password.Parse(app.AdminPassword)
	if err != nil {
		return officebus.NewOffice{}, fmt.Errorf("parse admin password: %w", err)
	}

	no := officebus.NewOffice{
		ID:            app.ID,
		Name:          nme,
		Password:      pw,
		AdminPassword: apw,
		IsPublic:      app.IsPublic,
	}

	return no, nil
}

// UpdateOffice contains information needed to update an office.
type UpdateOffice struct {
	Name          *string `json:"name"`
	Password      *string `json:"password"`
	AdminPassword *string `json:"adminPassword"`
	IsPublic      *bool   `json:"isPublic"`
	Enabled       *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateOffice) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusUpdateOffice(app UpdateOffice) (officebus.UpdateOffice, error) {
	uo := officebus.UpdateOffice{
		IsPublic: app.IsPublic,
		Enabled:  app.Enabled,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return officebus.UpdateOffice{}, fmt.Errorf("parse name: %w", err)
		}
		uo.Name = &nme
	}

	if app.Password != nil {
		pw, err := password.Parse(*app.Password)
		if err != nil {
			return officebus.UpdateOffice{}, fmt.Errorf("parse password: %w", err)
		}
		uo.Password = &pw
	}

	if app.AdminPassword != nil {
		apw, err := password.Parse(*app.AdminPassword)
		if err != nil {
			return officebus.UpdateOffice{}, fmt.Errorf("parse admin password: %w", err)
		}
		uo.AdminPassword = &apw
	}

	return uo, nil
}

// =============================================================================

// ConfigMember is one roster member in the board config.
type ConfigMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	Ext       string `json:"ext,omitempty"`
	WorkHours string `json:"workHours,omitempty"`
}

// ConfigGroup is one roster group in the board config.
type ConfigGroup struct {
	Name    string         `json:"name"`
	Members []ConfigMember `json:"members"`
}

// BoardConfig describes the shape of one office board: its name and the
// grouped roster in display order.
type BoardConfig struct {
	Office string        `json:"office"`
	Name   string        `json:"name"`
	Groups []ConfigGroup `json:"groups"`
}

// Encode implements the web.Encoder interface.
func (app BoardConfig) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// toAppBoardConfig regroups the flat roster preserving the group order the
// store produced.
func toAppBoardConfig(ofc officebus.Office, members []presencebus.Member) BoardConfig {
	cfg := BoardConfig{
		Office: ofc.ID,
		Name:   ofc.Name.String(),
		Groups: []ConfigGroup{},
	}

	idx := make(map[string]int)
	for _, m := range members {
		i, exists := idx[m.Group]
		if !exists {
			i = len(cfg.Groups)
			idx[m.Group] = i
			cfg.Groups = append(cfg.Groups, ConfigGroup{Name: m.Group, Members: []ConfigMember{}})
		}

		cfg.Groups[i].Members = append(cfg.Groups[i].Members, ConfigMember{
			ID:        m.ID,
			Name:      m.Name,
			Order:     m.Order,
			Ext:       m.Ext,
			WorkHours: m.WorkHours,
		})
	}

	return cfg
}
