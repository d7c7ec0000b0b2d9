package presenceapp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/whereabouts/app/sdk/errs"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
)

// MemberStatus is the status of one member as sent to clients.
type MemberStatus struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Note      string `json:"note"`
	WorkHours string `json:"workHours"`
	Updated   int64  `json:"updated"`
}

func toAppStatus(ms presencebus.MemberStatus) MemberStatus {
	return MemberStatus{
		Status:    ms.Status,
		Time:      ms.Time,
		Note:      ms.Note,
		WorkHours: ms.WorkHours,
		Updated:   ms.Updated,
	}
}

// Board is the answer to a differential status read. MaxUpdated is the value
// clients send back as since on their next poll; ServerNow is the server
// wall clock, letting clients advance past quiet periods.
type Board struct {
	Data       map[string]MemberStatus `json:"data"`
	MaxUpdated int64                   `json:"maxUpdated"`
	ServerNow  int64                   `json:"serverNow"`

	etag        string
	notModified bool
}

func toAppBoard(diff presencebus.Diff, officeID string, since int64, serverNow int64) Board {
	data := make(map[string]MemberStatus, len(diff.Data))
	for id, ms := range diff.Data {
		data[id] = toAppStatus(ms)
	}

	return Board{
		Data:       data,
		MaxUpdated: diff.MaxUpdated,
		ServerNow:  serverNow,
		etag:       fmt.Sprintf(`W/"%s-%d-%d"`, officeID, diff.MaxUpdated, since),
	}
}

// Encode implements the web.Encoder interface.
func (b Board) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b)
	return data, "application/json", err
}

// HTTPHeaders implements the web.headerer interface.
func (b Board) HTTPHeaders(h http.Header) {
	h.Set("ETag", b.etag)
	h.Set("Cache-Control", "no-cache")
}

// HTTPStatus implements the web.httpStatus interface.
func (b Board) HTTPStatus() int {
	if b.notModified {
		return http.StatusNotModified
	}
	return http.StatusOK
}

// =============================================================================

// StatusUpdate is one partial status write for a member. Absent fields leave
// the current value alone.
type StatusUpdate struct {
	Status    *string `json:"status"`
	Time      *string `json:"time"`
	Note      *string `json:"note"`
	WorkHours *string `json:"workHours"`
}

// UpdateBoard is a batch of status writes keyed by member id.
type UpdateBoard struct {
	Updates map[string]StatusUpdate `json:"updates" validate:"required,min=1"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateBoard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateBoard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdates(app UpdateBoard) map[string]presencebus.StatusUpdate {
	updates := make(map[string]presencebus.StatusUpdate, len(app.Updates))
	for id, up := range app.Updates {
		updates[id] = presencebus.StatusUpdate{
			Status:    up.Status,
			Time:      up.Time,
			Note:      up.Note,
			WorkHours: up.WorkHours,
		}
	}
	return updates
}

// UpdateResult acknowledges a batch write with the timestamp every member
// was stamped with.
type UpdateResult struct {
	Results       map[string]int64 `json:"rev"`
	ServerUpdated int64            `json:"serverUpdated"`
}

// Encode implements the web.Encoder interface.
func (ur UpdateResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(ur)
	return data, "application/json", err
}
