package noticeapp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/noticebus"
)

// Notice is one banner entry as sent to clients.
type Notice struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Visible bool   `json:"visible"`
	Updated int64  `json:"updated"`
}

func toAppNotice(ntc noticebus.Notice) Notice {
	return Notice{
		ID:      ntc.ID,
		Title:   ntc.Title,
		Content: ntc.Content,
		Visible: ntc.Visible,
		Updated: ntc.Updated,
	}
}

// Notices is the banner list of one office.
type Notices []Notice

// Encode implements the web.Encoder interface.
func (app Notices) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppNotices(ntcs []noticebus.Notice) Notices {
	app := make(Notices, len(ntcs))
	for i, ntc := range ntcs {
		app[i] = toAppNotice(ntc)
	}
	return app
}

// =============================================================================

// NewNotice is one banner entry in a list replacement. An omitted ID is
// generated server side.
type NewNotice struct {
	ID      string `json:"id"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	Visible bool   `json:"visible"`
}

// ReplaceNotices swaps the whole banner list of an office.
type ReplaceNotices struct {
	Notices []NewNotice `json:"notices" validate:"required,dive"`
}

// Decode implements the web.Decoder interface.
func (app *ReplaceNotices) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ReplaceNotices) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNotices(app ReplaceNotices) []noticebus.Notice {
	ntcs := make([]noticebus.Notice, len(app.Notices))
	for i, n := range app.Notices {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		ntcs[i] = noticebus.Notice{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Visible: n.Visible,
		}
	}
	return ntcs
}
