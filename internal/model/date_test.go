package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2023-01-01"`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d != (Date{Year: 2023, Month: time.January, Day: 1}) {
		t.Errorf("unexpected date %+v", d)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `"2023-01-01"` {
		t.Errorf("expected \"2023-01-01\", got %s", out)
	}
}

func TestDateUnmarshalRejectsBadInput(t *testing.T) {
	tests := []string{`"2023-13-01"`, `"01/01/2023"`, `20230101`, `""`}
	for _, in := range tests {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("Unmarshal(%s) expected error, got %v", in, d)
		}
	}
}

func TestDateAfter(t *testing.T) {
	today := Date{Year: 2024, Month: time.March, Day: 10}
	tests := []struct {
		d        Date
		expected bool
	}{
		{Date{Year: 2024, Month: time.March, Day: 11}, true},
		{Date{Year: 2024, Month: time.March, Day: 10}, false},
		{Date{Year: 2023, Month: time.December, Day: 31}, false},
	}

	for _, tt := range tests {
		if got := tt.d.After(today); got != tt.expected {
			t.Errorf("%s.After(%s) = %v, want %v", tt.d, today, got, tt.expected)
		}
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("1999-12-31"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.String() != "1999-12-31" {
		t.Errorf("expected 1999-12-31, got %s", d)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
