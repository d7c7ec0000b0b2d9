package daybits_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/whereabouts/business/types/daybits"
)

var roster = []daybits.Entry{
	{ID: "m1", Name: "Alice"},
	{ID: "m2", Name: "Bob"},
	{ID: "m3", Name: "Carol"},
}

func TestParse(t *testing.T) {
	valid := []string{
		"",
		"110",
		"110;011;000",
		"2026-02-10:101",
		"2026-02-10:101;2026-02-11:010",
		" 110 ; 011 ",
	}

	for _, value := range valid {
		if _, err := daybits.Parse(value); err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", value, err)
		}
	}

	invalid := []string{
		"102",
		"110;01x",
		"2026-02-10:1a1",
	}

	for _, value := range invalid {
		if _, err := daybits.Parse(value); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", value)
		}
	}
}

func TestEncodeUniform(t *testing.T) {
	byDate := map[string][]int{
		"2026-02-10": {0, 2},
		"2026-02-11": {0, 2},
		"2026-02-12": {0, 2},
	}

	b, err := daybits.Encode("2026-02-10", "2026-02-12", 3, byDate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := b.String(); got != "101" {
		t.Fatalf("uniform membership should collapse to one segment: got %q", got)
	}
}

func TestEncodePerDay(t *testing.T) {
	byDate := map[string][]int{
		"2026-02-10": {0},
		"2026-02-11": {1, 2},
	}

	b, err := daybits.Encode("2026-02-10", "2026-02-11", 3, byDate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := b.String(); got != "100;011" {
		t.Fatalf("got %q, want %q", got, "100;011")
	}
}

func TestEncodeRejectsReversedRange(t *testing.T) {
	if _, err := daybits.Encode("2026-02-12", "2026-02-10", 3, nil); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestEncodeIgnoresOutOfRangePositions(t *testing.T) {
	byDate := map[string][]int{
		"2026-02-10": {-1, 1, 9},
	}

	b, err := daybits.Encode("2026-02-10", "2026-02-10", 3, byDate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := b.String(); got != "010" {
		t.Fatalf("got %q, want %q", got, "010")
	}
}

func TestMembersOnSingleSegment(t *testing.T) {
	b := daybits.MustParse("110")

	sel := b.MembersOn("2026-02-11", "2026-02-10", "2026-02-12", roster)

	if got, want := strings.Join(sel.MemberIDs, ","), "m1,m2"; got != want {
		t.Errorf("ids: got %q, want %q", got, want)
	}
	if sel.MemberNames != "Alice、Bob" {
		t.Errorf("names: got %q", sel.MemberNames)
	}
}

func TestMembersOnPositionalSegments(t *testing.T) {
	b := daybits.MustParse("100;010;001")

	sel := b.MembersOn("2026-02-11", "2026-02-10", "2026-02-12", roster)

	if got, want := strings.Join(sel.MemberIDs, ","), "m2"; got != want {
		t.Errorf("second day should select second segment: got %q, want %q", got, want)
	}
}

func TestMembersOnShortBitstring(t *testing.T) {
	// Bits written before the roster grew: only the covered positions apply.
	b := daybits.MustParse("01")

	sel := b.MembersOn("2026-02-10", "2026-02-10", "2026-02-10", roster)

	if got, want := strings.Join(sel.MemberIDs, ","), "m2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMembersOnDatePrefixedFallback(t *testing.T) {
	// Target outside the stored range falls back to date-prefix matching,
	// first match wins on duplicates.
	b := daybits.MustParse("2026-03-01:100;2026-03-01:010")

	sel := b.MembersOn("2026-03-01", "2026-02-10", "2026-02-12", roster)

	if got, want := strings.Join(sel.MemberIDs, ","), "m1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMembersOnSingleUnprefixedFallback(t *testing.T) {
	// One unprefixed segment applies to any date, even outside the range.
	b := daybits.MustParse("111")

	sel := b.MembersOn("2030-01-01", "2026-02-10", "2026-02-12", roster)

	if got := len(sel.MemberIDs); got != 3 {
		t.Errorf("got %d members, want 3", got)
	}
}

func TestMembersOnNoMatch(t *testing.T) {
	b := daybits.MustParse("2026-02-10:100;2026-02-11:010")

	sel := b.MembersOn("2026-05-05", "2026-02-10", "2026-02-11", roster)

	if len(sel.MemberIDs) != 0 || sel.MemberNames != "" {
		t.Errorf("expected empty selection, got %+v", sel)
	}
}

func TestMembersOnEmptyRoster(t *testing.T) {
	b := daybits.MustParse("111")

	sel := b.MembersOn("2026-02-10", "2026-02-10", "2026-02-10", nil)

	if len(sel.MemberIDs) != 0 {
		t.Errorf("expected empty selection, got %+v", sel)
	}
}

func TestMembersOnSlashDates(t *testing.T) {
	b := daybits.MustParse("100;010")

	sel := b.MembersOn("2026/02/11", "2026/02/10", "2026/02/11", roster)

	if got, want := strings.Join(sel.MemberIDs, ","), "m2"; got != want {
		t.Errorf("slash dates should normalize: got %q, want %q", got, want)
	}
}

func TestUnmarshalText(t *testing.T) {
	var b daybits.Bits

	if err := b.UnmarshalText([]byte("110")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !b.Equal(daybits.MustParse("110")) {
		t.Fatalf("got %q", b.String())
	}

	if err := b.UnmarshalText([]byte("1x0")); err == nil {
		t.Fatal("expected error for invalid bits")
	}
}
