package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshalFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2025-03-01T10:00:00Z"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", `"2025-03-01T12:00:00+02:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"zone-less", `"2025-03-01T10:00:00"`, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"zone-less fraction", `"2025-03-01T10:00:00.123456"`, time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC)},
		{"date only", `"2025-03-01"`, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.raw), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.raw, err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.raw, ts.Time, tt.want)
			}
		})
	}
}

func TestTimestampEmptyAndNull(t *testing.T) {
	for _, raw := range []string{`""`, `null`} {
		ts := NewTimestamp(time.Now())
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", raw, err)
		}
		if !ts.IsZero() {
			t.Errorf("Unmarshal(%s) = %v, want zero", raw, ts.Time)
		}
	}

	data, err := json.Marshal(Timestamp{})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("Marshal(zero) = %s, want \"\"", data)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestDateWireFormat(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-03-01"`), &d); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if d.String() != "2025-03-01" {
		t.Errorf("String() = %q, want 2025-03-01", d.String())
	}

	if err := json.Unmarshal([]byte(`"2025-03-01T23:15:00"`), &d); err != nil {
		t.Fatalf("Unmarshal timestamp-shaped date error: %v", err)
	}
	if d.String() != "2025-03-01" {
		t.Errorf("String() = %q, want 2025-03-01", d.String())
	}

	out, err := json.Marshal(PracticeLogRequest{UserID: 1, PracticeDate: d, MinutesPracticed: 20})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"userId":1,"practiceDate":"2025-03-01","minutesPracticed":20}`
	if string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}
