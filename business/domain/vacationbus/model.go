package vacationbus

import (
	"github.com/jcpaschoal/whereabouts/business/types/daybits"
)

// Vacation represents one absence period on an office board. Members holds
// the encoded per-member selection for the period. IsVacation distinguishes
// real absences from banner-only entries linked to a notice.
type Vacation struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Color       string       `json:"color"`
	Visible     bool         `json:"visible"`
	Members     daybits.Bits `json:"members"`
	IsVacation  bool         `json:"isVacation"`
	Note        string       `json:"note"`
	NoticeID    string       `json:"noticeId"`
	NoticeTitle string       `json:"noticeTitle"`
	Order       int          `json:"order"`
	Updated     int64        `json:"updated"`
}

// UpdateVacation contains the fields of a partial vacation update.
type UpdateVacation struct {
	Title       *string
	StartDate   *string
	EndDate     *string
	Color       *string
	Visible     *bool
	Members     *daybits.Bits
	IsVacation  *bool
	Note        *string
	NoticeID    *string
	NoticeTitle *string
	Order       *int
}
