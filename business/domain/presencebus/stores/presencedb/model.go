package presencedb

import (
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
)

type memberDB struct {
	OfficeID  string `db:"office_id"`
	MemberID  string `db:"member_id"`
	Name      string `db:"name"`
	GroupName string `db:"group_name"`
	Order     int    `db:"display_order"`
	Status    string `db:"status"`
	Time      string `db:"time"`
	Note      string `db:"note"`
	WorkHours string `db:"work_hours"`
	Ext       string `db:"ext"`
	Updated   int64  `db:"updated"`
}

func toDBMember(officeID string, mem presencebus.Member) memberDB {
	return memberDB{
		OfficeID:  officeID,
		MemberID:  mem.ID,
		Name:      mem.Name,
		GroupName: mem.Group,
		Order:     mem.Order,
		Status:    mem.Status,
		Time:      mem.Time,
		Note:      mem.Note,
		WorkHours: mem.WorkHours,
		Ext:       mem.Ext,
		Updated:   mem.Updated,
	}
}

func toBusMember(db memberDB) presencebus.Member {
	return presencebus.Member{
		ID:        db.MemberID,
		Name:      db.Name,
		Group:     db.GroupName,
		Order:     db.Order,
		Status:    db.Status,
		Time:      db.Time,
		Note:      db.Note,
		WorkHours: db.WorkHours,
		Ext:       db.Ext,
		Updated:   db.Updated,
	}
}

func toBusMembers(dbs []memberDB) []presencebus.Member {
	mems := make([]presencebus.Member, len(dbs))
	for i, db := range dbs {
		mems[i] = toBusMember(db)
	}
	return mems
}
