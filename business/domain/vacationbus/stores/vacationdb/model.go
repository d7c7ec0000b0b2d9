package vacationdb

import (
	"fmt"

	"github.com/jcpaschoal/whereabouts/business/domain/vacationbus"
	"github.com/jcpaschoal/whereabouts/business/types/daybits"
)

type vacationDB struct {
	OfficeID    string `db:"office_id"`
	VacationID  string `db:"vacation_id"`
	Title       string `db:"title"`
	StartDate   string `db:"start_date"`
	EndDate     string `db:"end_date"`
	Color       string `db:"color"`
	Visible     bool   `db:"visible"`
	MembersBits string `db:"members_bits"`
	IsVacation  bool   `db:"is_vacation"`
	Note        string `db:"note"`
	NoticeID    string `db:"notice_id"`
	NoticeTitle string `db:"notice_title"`
	Order       int    `db:"display_order"`
	Updated     int64  `db:"updated"`
}

func toDBVacation(officeID string, vac vacationbus.Vacation) vacationDB {
	return vacationDB{
		OfficeID:    officeID,
		VacationID:  vac.ID,
		Title:       vac.Title,
		StartDate:   vac.StartDate,
		EndDate:     vac.EndDate,
		Color:       vac.Color,
		Visible:     vac.Visible,
		MembersBits: vac.Members.String(),
		IsVacation:  vac.IsVacation,
		Note:        vac.Note,
		NoticeID:    vac.NoticeID,
		NoticeTitle: vac.NoticeTitle,
		Order:       vac.Order,
		Updated:     vac.Updated,
	}
}

func toBusVacation(db vacationDB) (vacationbus.Vacation, error) {
	bits, err := daybits.Parse(db.MembersBits)
	if err != nil {
		return vacationbus.Vacation{}, fmt.Errorf("parse members: %w", err)
	}

	vac := vacationbus.Vacation{
		ID:          db.VacationID,
		Title:       db.Title,
		StartDate:   db.StartDate,
		EndDate:     db.EndDate,
		Color:       db.Color,
		Visible:     db.Visible,
		Members:     bits,
		IsVacation:  db.IsVacation,
		Note:        db.Note,
		NoticeID:    db.NoticeID,
		NoticeTitle: db.NoticeTitle,
		Order:       db.Order,
		Updated:     db.Updated,
	}

	return vac, nil
}

func toBusVacations(dbs []vacationDB) ([]vacationbus.Vacation, error) {
	vacs := make([]vacationbus.Vacation, len(dbs))
	for i, db := range dbs {
		var err error
		vacs[i], err = toBusVacation(db)
		if err != nil {
			return nil, err
		}
	}

	return vacs, nil
}
