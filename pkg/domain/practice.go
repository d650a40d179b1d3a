package domain

// Practice log limits enforced by the practice log form.
const (
	MinPracticeMinutes     = 1
	MaxPracticeMinutes     = 300
	DefaultPracticeMinutes = 30
)

// PracticeLog is one logged practice session.
type PracticeLog struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	PracticeDate     Date      `json:"practiceDate"`
	MinutesPracticed int       `json:"minutesPracticed"`
	Notes            string    `json:"notes"`
	CreatedAt        Timestamp `json:"createdAt"`
}

// PracticeLogRequest is the payload for creating or updating a log entry.
type PracticeLogRequest struct {
	UserID           int64  `json:"userId"`
	PracticeDate     Date   `json:"practiceDate"`
	MinutesPracticed int    `json:"minutesPracticed"`
	Notes            string `json:"notes,omitempty"`
}

// TotalMinutes sums the minutes of logs.
func TotalMinutes(logs []PracticeLog) int {
	total := 0
	for _, l := range logs {
		total += l.MinutesPracticed
	}
	return total
}
