package toolapp

import (
	"encoding/json"
	"fmt"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/toolbus"
)

// Tool is one pinned link as sent to clients.
type Tool struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order"`
}

// Tools is the pinned link list of one office.
type Tools []Tool

// Encode implements the web.Encoder interface.
func (app Tools) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppTools(tools []toolbus.Tool) Tools {
	app := make(Tools, len(tools))
	for i, t := range tools {
		app[i] = Tool{
			ID:    t.ID,
			Label: t.Label,
			URL:   t.URL,
			Icon:  t.Icon,
			Order: t.Order,
		}
	}
	return app
}

// =============================================================================

// NewTool is one pinned link in a list replacement.
type NewTool struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// ReplaceTools swaps the whole pinned link list of an office.
type ReplaceTools struct {
	Tools []NewTool `json:"tools" validate:"required,dive"`
}

// Decode implements the web.Decoder interface.
func (app *ReplaceTools) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ReplaceTools) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusTools(app ReplaceTools) []toolbus.Tool {
	tools := make([]toolbus.Tool, len(app.Tools))
	for i, t := range app.Tools {
		tools[i] = toolbus.Tool{
			ID:    t.ID,
			Label: t.Label,
			URL:   t.URL,
			Icon:  t.Icon,
			Order: t.Order,
		}
	}
	return tools
}
