package presenceapp

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
)

func TestBoardEncode(t *testing.T) {
	diff := presencebus.Diff{
		Data: map[string]presencebus.MemberStatus{
			"m1": {Status: "在席", Updated: 120},
		},
		MaxUpdated: 120,
	}

	board := toAppBoard(diff, "tokyo", 42, 5000)

	raw, contentType, err := board.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("content type: got %q", contentType)
	}

	var got struct {
		Data       map[string]MemberStatus `json:"data"`
		MaxUpdated int64                   `json:"maxUpdated"`
		ServerNow  int64                   `json:"serverNow"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ServerNow != 5000 {
		t.Errorf("serverNow: got %d, want 5000", got.ServerNow)
	}
	if got.MaxUpdated != 120 {
		t.Errorf("maxUpdated: got %d, want 120", got.MaxUpdated)
	}
	if got.Data["m1"].Status != "在席" {
		t.Errorf("data: got %+v", got.Data)
	}
}

func TestBoardETag(t *testing.T) {
	board := toAppBoard(presencebus.Diff{MaxUpdated: 120}, "tokyo", 42, 5000)

	h := make(http.Header)
	board.HTTPHeaders(h)

	if got, want := h.Get("ETag"), `W/"tokyo-120-42"`; got != want {
		t.Errorf("ETag: got %q, want %q", got, want)
	}
	if h.Get("Cache-Control") != "no-cache" {
		t.Errorf("Cache-Control: got %q", h.Get("Cache-Control"))
	}
}

func TestBoardNotModified(t *testing.T) {
	board := toAppBoard(presencebus.Diff{MaxUpdated: 42}, "tokyo", 42, 5000)

	if board.HTTPStatus() != http.StatusOK {
		t.Errorf("status: got %d, want 200", board.HTTPStatus())
	}

	board.notModified = true
	if board.HTTPStatus() != http.StatusNotModified {
		t.Errorf("status: got %d, want 304", board.HTTPStatus())
	}
}
