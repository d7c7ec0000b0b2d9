package page_test

import (
	"testing"

	"github.com/jcpaschoal/whereabouts/business/sdk/page"
)

func TestParseDefaults(t *testing.T) {
	p, err := page.Parse("", "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Number() != 1 || p.RowsPerPage() != 10 {
		t.Fatalf("got %s", p)
	}
}

func TestParseValues(t *testing.T) {
	p, err := page.Parse("3", "25")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Number() != 3 || p.RowsPerPage() != 25 {
		t.Fatalf("got %s", p)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := [][2]string{
		{"abc", ""},
		{"", "abc"},
		{"0", "10"},
		{"-1", "10"},
		{"1", "0"},
		{"1", "101"},
	}

	for _, c := range cases {
		if _, err := page.Parse(c[0], c[1]); err == nil {
			t.Errorf("Parse(%q, %q): expected error", c[0], c[1])
		}
	}
}
