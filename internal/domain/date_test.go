package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-08-26"`), &d); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.String() != "2026-08-26" {
		t.Errorf("expected 2026-08-26, got %s", d.String())
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(out) != `"2026-08-26"` {
		t.Errorf("expected quoted date, got %s", out)
	}
}

func TestDateRejectsOtherFormats(t *testing.T) {
	for _, raw := range []string{`"26-08-2026"`, `"2026-08-26T00:00:00Z"`, `"tomorrow"`, `42`} {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("expected %s to be rejected", raw)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, time.August, 26)

	if got := d.AddDays(2).String(); got != "2026-08-28" {
		t.Errorf("expected 2026-08-28, got %s", got)
	}
	if got := d.AddDays(-30).String(); got != "2026-07-27" {
		t.Errorf("expected 2026-07-27, got %s", got)
	}

	// Month rollover.
	if got := NewDate(2026, time.December, 31).AddDays(1).String(); got != "2027-01-01" {
		t.Errorf("expected 2027-01-01, got %s", got)
	}
}

func TestDateOfTruncatesToUTCDay(t *testing.T) {
	instant := time.Date(2026, time.August, 26, 23, 59, 0, 0, time.UTC)
	if got := DateOf(instant).String(); got != "2026-08-26" {
		t.Errorf("expected 2026-08-26, got %s", got)
	}
}
