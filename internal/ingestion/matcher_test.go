package ingestion

import (
	"testing"

	"github.com/guttosm/tradedesk/internal/domain/models"
)

func TestExtractAccountNumber(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"APEX12345678.csv", "APEX12345678", true},
		{"apex-12345678_performance.csv", "APEX12345678", true},
		{"Performance_TDV-1234567890 (1).csv", "TDV1234567890", true},
		{"A12345678.csv", "", false},   // one letter
		{"APEX1234567.csv", "", false}, // seven digits
		{"APEX--12345678.csv", "", false},
		{"performance.csv", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractAccountNumber(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ExtractAccountNumber(%q)=(%q,%v) want (%q,%v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNormalizeAccountNumber(t *testing.T) {
	if got := NormalizeAccountNumber(" apex-1234 5678 "); got != "APEX12345678" {
		t.Fatalf("got %q", got)
	}
}

func TestAccountIndex_Lookup(t *testing.T) {
	idx := NewAccountIndex([]models.Account{
		{ID: "a", AccountNumber: "APEX-12345678"},
		{ID: "b", AccountNumber: "apex12345678"},
		{ID: "c", AccountNumber: "TDV 8765 4321"},
		{ID: "d", AccountNumber: ""},
	})

	if acc, n, ok := idx.Lookup("APEX12345678_perf.csv"); !ok || acc.ID != "a" || n != "APEX12345678" {
		t.Fatalf("first account should win, got %+v %q %v", acc, n, ok)
	}
	if acc, _, ok := idx.Lookup("tdv-87654321.csv"); !ok || acc.ID != "c" {
		t.Fatalf("expected c, got %+v %v", acc, ok)
	}
	if _, n, ok := idx.Lookup("XY00000000.csv"); ok || n != "XY00000000" {
		t.Fatalf("unknown number should miss with token, got %q %v", n, ok)
	}
	if _, n, ok := idx.Lookup("export.csv"); ok || n != "" {
		t.Fatalf("no token expected, got %q %v", n, ok)
	}
	if len(idx) != 2 {
		t.Fatalf("index size=%d want 2", len(idx))
	}
}
