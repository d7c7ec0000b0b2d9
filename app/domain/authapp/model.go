package authapp

import (
	"encoding/json"
	"fmt"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/types/role"
)

type Token struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	Office     string `json:"office"`
	OfficeName string `json:"officeName"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string, r role.Role, ofc officebus.Office) Token {
	return Token{
		Token:      token,
		Role:       r.String(),
		Office:     ofc.ID,
		OfficeName: ofc.Name.String(),
	}
}

type Login struct {
	Office   string `json:"office" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
