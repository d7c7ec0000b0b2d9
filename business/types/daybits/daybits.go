// Package daybits represents the per-day event membership encoding in the
// system. An event stores which roster positions participate on each day of
// its date range as a compact transport string: either a single bitstring
// that applies to every day in range, or a semicolon-separated sequence with
// one segment per day, where a segment is a bitstring optionally prefixed
// with an explicit "date:".
package daybits

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one roster member in display order. The zero-based slice index of
// an Entry is the position addressed by the bitstring.
type Entry struct {
	ID   string
	Name string
}

// Selection is the decoded membership for a single day.
type Selection struct {
	MemberIDs   []string
	MemberNames string
}

// Bits represents the transport encoding of per-day event membership.
type Bits struct {
	value string
}

// String returns the transport value.
func (b Bits) String() string {
	return b.value
}

// Equal provides support for the go-cmp package and testing.
func (b Bits) Equal(b2 Bits) bool {
	return b.value == b2.value
}

// MarshalText provides support for logging and any marshal needs.
func (b Bits) MarshalText() ([]byte, error) {
	return []byte(b.value), nil
}

// UnmarshalText provides support for decoding stored values.
func (b *Bits) UnmarshalText(data []byte) error {
	bits, err := Parse(string(data))
	if err != nil {
		return err
	}

	*b = bits

	return nil
}

// IsZero reports whether no membership is encoded at all.
func (b Bits) IsZero() bool {
	return b.value == ""
}

// =============================================================================

// Parse parses the string value and returns a Bits value if every segment is
// well formed. The empty string is valid and means "no members".
func Parse(value string) (Bits, error) {
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bits := part
		if idx := strings.Index(part, ":"); idx >= 0 {
			bits = part[idx+1:]
		}

		for _, r := range bits {
			if r != '0' && r != '1' {
				return Bits{}, fmt.Errorf("invalid bits segment %q", part)
			}
		}
	}

	return Bits{value}, nil
}

// MustParse parses the string value and returns a Bits value. If an error
// occurs the function panics.
func MustParse(value string) Bits {
	b, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return b
}

// Encode builds the transport value for the date range [start, end] from a
// map of date to participating roster positions. When every day in range
// carries the same membership a single bitstring is produced; otherwise one
// positional segment per day.
func Encode(start string, end string, rosterSize int, byDate map[string][]int) (Bits, error) {
	dates, err := dateSlots(normalizeDate(start), normalizeDate(end))
	if err != nil {
		return Bits{}, err
	}

	segments := make([]string, len(dates))
	uniform := true
	for i, date := range dates {
		segments[i] = bitstring(rosterSize, byDate[date])
		if segments[i] != segments[0] {
			uniform = false
		}
	}

	if len(segments) == 0 {
		return Bits{}, nil
	}

	if uniform {
		return Bits{segments[0]}, nil
	}

	return Bits{strings.Join(segments, ";")}, nil
}

// MembersOn decodes the membership for targetDate against the given roster
// ordering. The roster can have grown since the bits were written; positions
// beyond the bitstring are simply not selected, and a target outside the
// stored range degrades to matching a date-prefixed segment rather than
// failing.
func (b Bits) MembersOn(targetDate string, startDate string, endDate string, roster []Entry) Selection {
	if len(roster) == 0 {
		return Selection{}
	}

	target := normalizeDate(targetDate)
	if target == "" {
		return Selection{}
	}

	start := normalizeDate(startDate)
	end := normalizeDate(endDate)

	var parts []string
	for _, p := range strings.Split(b.value, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	if start == "" || end == "" || target < start || target > end {
		return matchPart(parts, target, roster)
	}

	dates, err := dateSlots(start, end)
	if err != nil {
		return matchPart(parts, target, roster)
	}

	targetIdx := -1
	for i, d := range dates {
		if d == target {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return matchPart(parts, target, roster)
	}

	// Tolerate a transport value shorter than the date range; it may have
	// been written before the range was extended.
	if len(parts) == 0 || targetIdx >= len(parts) {
		return matchPart(parts, target, roster)
	}

	return selectionFromBits(stripDatePrefix(parts[targetIdx]), roster)
}

// =============================================================================

// matchPart searches the segments for one whose date prefix matches target.
// When no segment has a prefix and exactly one segment exists, that segment
// applies to any date. First match wins on duplicate prefixes.
func matchPart(parts []string, target string, roster []Entry) Selection {
	if len(parts) == 0 || target == "" {
		return Selection{}
	}

	for _, p := range parts {
		idx := strings.Index(p, ":")
		if idx < 0 {
			continue
		}
		if normalizeDate(p[:idx]) == target {
			return selectionFromBits(p[idx+1:], roster)
		}
	}

	if len(parts) == 1 && !strings.Contains(parts[0], ":") {
		return selectionFromBits(parts[0], roster)
	}

	return Selection{}
}

func selectionFromBits(bits string, roster []Entry) Selection {
	on := make(map[int]struct{})
	for i := 0; i < len(bits) && i < len(roster); i++ {
		if bits[i] == '1' {
			on[i] = struct{}{}
		}
	}

	var ids []string
	var names []string
	for i, entry := range roster {
		if _, ok := on[i]; !ok {
			continue
		}
		ids = append(ids, entry.ID)
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}

	return Selection{
		MemberIDs:   ids,
		MemberNames: strings.Join(names, "、"),
	}
}

func stripDatePrefix(part string) string {
	if idx := strings.Index(part, ":"); idx >= 0 {
		return part[idx+1:]
	}
	return part
}

func bitstring(size int, positions []int) string {
	bits := make([]byte, size)
	for i := range bits {
		bits[i] = '0'
	}
	for _, p := range positions {
		if p >= 0 && p < size {
			bits[p] = '1'
		}
	}
	return string(bits)
}

// dateFormats are the accepted layouts for date normalization.
var dateFormats = []string{"2006-01-02", "2006/01/02", time.RFC3339}

// normalizeDate reduces a date string to YYYY-MM-DD, or returns the empty
// string if it cannot be parsed.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, value); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return ""
}

// dateSlots returns every calendar date from start to end inclusive.
func dateSlots(start string, end string) ([]string, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q", start)
	}

	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q", end)
	}

	if e.Before(s) {
		return nil, fmt.Errorf("end date %q before start date %q", end, start)
	}

	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}

	return dates, nil
}
