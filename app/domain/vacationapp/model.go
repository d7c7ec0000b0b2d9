package vacationapp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/types/daybits"
)

// Vacation is one absence entry as sent to clients.
type Vacation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Color       string `json:"color"`
	Visible     bool   `json:"visible"`
	Members     string `json:"members"`
	IsVacation  bool   `json:"isVacation"`
	Note        string `json:"note"`
	NoticeID    string `json:"noticeId,omitempty"`
	NoticeTitle string `json:"noticeTitle,omitempty"`
	Order       int    `json:"order"`
	Updated     int64  `json:"updated"`
}

// Encode implements the web.Encoder interface.
func (app Vacation) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppVacation(vac vacationbus.Vacation) Vacation {
	return Vacation{
		ID:          vac.ID,
		Title:       vac.Title,
		StartDate:   vac.StartDate,
		EndDate:     vac.EndDate,
		Color:       vac.Color,
		Visible:     vac.Visible,
		Members:     vac.Members.String(),
		IsVacation:  vac.IsVacation,
		Note:        vac.Note,
		NoticeID:    vac.NoticeID,
		NoticeTitle: vac.NoticeTitle,
		Order:       vac.Order,
		Updated:     vac.Updated,
	}
}

// Vacations is the list of absence entries of one office.
type Vacations []Vacation

// Encode implements the web.Encoder interface.
func (app Vacations) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppVacations(vacs []vacationbus.Vacation) Vacations {
	app := make(Vacations, len(vacs))
	for i, vac := range vacs {
		app[i] = toAppVacation(vac)
	}
	return app
}

// =============================================================================

// NewVacation contains information needed to create a new vacation entry.
// An omitted ID is generated server side.
type NewVacation struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Color       string `json:"color"`
	Visible     bool   `json:"visible"`
	Members     string `json:"members"`
	IsVacation  bool   `json:"isVacation"`
	Note        string `json:"note"`
	NoticeID    string `json:"noticeId"`
	NoticeTitle string `json:"noticeTitle"`
	Order       int    `json:"order"`
}

// Decode implements the web.Decoder interface.
func (app *NewVacation) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewVacation) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}

	if _, err := daybits.Parse(app.Members); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}

	return nil
}

func toBusVacation(app NewVacation) (vacationbus.Vacation, error) {
	bits, err := daybits.Parse(app.Members)
	if err != nil {
		return vacationbus.Vacation{}, fmt.Errorf("parse members: %w", err)
	}

	if app.ID == "" {
		app.ID = uuid.NewString()
	}

	vac := vacationbus.Vacation{
		ID:          app.ID,
		Title:       app.Title,
		StartDate:   app.StartDate,
		EndDate:     app.EndDate,
		Color:       app.Color,
		Visible:     app.Visible,
		Members:     bits,
		IsVacation:  app.IsVacation,
		Note:        app.Note,
		NoticeID:    app.NoticeID,
		NoticeTitle: app.NoticeTitle,
		Order:       app.Order,
	}

	return vac, nil
}

// UpdateBits carries a membership-only update for a vacation entry.
type UpdateBits struct {
	Members string `json:"members"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateBits) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateBits) Validate() error {
	if _, err := daybits.Parse(app.Members); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// UpdateVacation contains information needed to update a vacation entry.
type UpdateVacation struct {
	Title       *string `json:"title"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Color       *string `json:"color"`
	Visible     *bool   `json:"visible"`
	Members     *string `json:"members"`
	IsVacation  *bool   `json:"isVacation"`
	Note        *string `json:"note"`
	NoticeID    *string `json:"noticeId"`
	NoticeTitle *string `json:"noticeTitle"`
	Order       *int    `json:"order"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateVacation) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateVacation) Validate() error {
	if app.Members != nil {
		if _, err := daybits.Parse(*app.Members); err != nil {
			return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
		}
	}

	return nil
}

func toBusUpdateVacation(app UpdateVacation) (vacationbus.UpdateVacation, error) {
	uv := vacationbus.UpdateVacation{
		Title:       app.Title,
		StartDate:   app.StartDate,
		EndDate:     app.EndDate,
		Color:       app.Color,
		Visible:     app.Visible,
		IsVacation:  app.IsVacation,
		Note:        app.Note,
		NoticeID:    app.NoticeID,
		NoticeTitle: app.NoticeTitle,
		Order:       app.Order,
	}

	if app.Members != nil {
		bits, err := daybits.Parse(*app.Members)
		if err != nil {
			return vacationbus.UpdateVacation{}, fmt.Errorf("parse members: %w", err)
		}
		uv.Members = &bits
	}

	return uv, nil
}

// =============================================================================

// DayMembers is the decoded membership of one vacation entry for one day.
type DayMembers struct {
	Date        string   `json:"date"`
	MemberIDs   []string `json:"memberIds"`
	MemberNames string   `json:"memberNames"`
}

// Encode implements the web.Encoder interface.
func (app DayMembers) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppDayMembers(date string, sel daybits.Selection) DayMembers {
	ids := sel.MemberIDs
	if ids == nil {
		ids = []string{}
	}

	return DayMembers{
		Date:        date,
		MemberIDs:   ids,
		MemberNames: sel.MemberNames,
	}
}
