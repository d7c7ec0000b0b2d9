package presencebus

// Member represents one person on an office roster together with their
// current whereabouts. Updated is an epoch-millisecond timestamp of the last
// status write; zero means the record has never been stamped.
type Member struct {
	ID        string
	Name      string
	Group     string
	Order     int
	Status    string
	Time      string
	Note      string
	WorkHours string
	Ext       string
	Updated   int64
}

// MemberStatus is the status subset of a member carried in snapshots and
// diff responses. The JSON tags are the snapshot cache wire format.
type MemberStatus struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Note      string `json:"note"`
	WorkHours string `json:"workHours"`
	Updated   int64  `json:"updated"`
}

// StatusUpdate carries the fields of a partial status write. Nil fields are
// left untouched in the store.
type StatusUpdate struct {
	Status    *string
	Time      *string
	Note      *string
	WorkHours *string
}

// Snapshot is the cached full member-status map for one office plus its
// maximum update timestamp. MaxUpdated equals the maximum Updated over all
// contained members, or a caller-supplied fallback when the office is empty.
type Snapshot struct {
	CachedAt   int64                   `json:"cachedAt"`
	MaxUpdated int64                   `json:"maxUpdated"`
	Members    map[string]MemberStatus `json:"members"`
}

// Diff is the payload answered to a differential read. Data holds only the
// members the caller has not seen yet; MaxUpdated never regresses below the
// caller's since value.
type Diff struct {
	Data       map[string]MemberStatus
	MaxUpdated int64
}

func statusOf(m Member) MemberStatus {
	return MemberStatus{
		Status:    m.Status,
		Time:      m.Time,
		Note:      m.Note,
		WorkHours: m.WorkHours,
		Updated:   m.Updated,
	}
}
