package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// Practice log form fields.
const (
	FieldDate    = "practiceDate"
	FieldMinutes = "minutesPracticed"
	FieldNotes   = "notes"
)

// MaxNotesLen bounds the free-text notes.
const MaxNotesLen = 1000

// PracticeLog is the add/edit form for a practice session.
type PracticeLog struct {
	Date    string
	Minutes string
	Notes   string
}

type practiceFields struct {
	Date    string `form:"practiceDate" validate:"required,datetime=2006-01-02"`
	Minutes int    `form:"minutesPracticed" validate:"min=1,max=300"`
	Notes   string `form:"notes" validate:"max=1000"`
}

// NewPracticeLog returns the add form: today, the default duration, no notes.
func NewPracticeLog(today time.Time) PracticeLog {
	return PracticeLog{
		Date:    today.Format(domain.DateLayout),
		Minutes: strconv.Itoa(domain.DefaultPracticeMinutes),
	}
}

// EditPracticeLog returns the form pre-filled from an existing entry.
func EditPracticeLog(l domain.PracticeLog) PracticeLog {
	return PracticeLog{
		Date:    l.PracticeDate.String(),
		Minutes: strconv.Itoa(l.MinutesPracticed),
		Notes:   l.Notes,
	}
}

func (f PracticeLog) Set(field, value string) PracticeLog {
	switch field {
	case FieldDate:
		f.Date = value
	case FieldMinutes:
		f.Minutes = value
	case FieldNotes:
		f.Notes = value
	}
	return f
}

func (f PracticeLog) Value(field string) string {
	switch field {
	case FieldDate:
		return f.Date
	case FieldMinutes:
		return f.Minutes
	case FieldNotes:
		return f.Notes
	}
	return ""
}

func (f PracticeLog) Validate() Errors {
	errs := Errors{}
	minutes, msg, ok := parseWhole(f.Minutes, "Minutes is required")
	if !ok {
		errs[FieldMinutes] = msg
	}
	check(practiceFields{
		Date:    strings.TrimSpace(f.Date),
		Minutes: minutes,
		Notes:   f.Notes,
	}, errs, practiceMessage)
	return errs
}

// Request builds the API payload. Call it only on a valid form.
func (f PracticeLog) Request(userID int64) domain.PracticeLogRequest {
	minutes, _, _ := parseWhole(f.Minutes, "")
	date, _ := domain.ParseDate(strings.TrimSpace(f.Date)) //nolint:errcheck // validated
	return domain.PracticeLogRequest{
		UserID:           userID,
		PracticeDate:     date,
		MinutesPracticed: minutes,
		Notes:            strings.TrimSpace(f.Notes),
	}
}

func practiceMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldDate:
		if fe.Tag() == "required" {
			return "Date is required"
		}
		return "Date must be YYYY-MM-DD"
	case FieldMinutes:
		if fe.Tag() == "min" {
			return "Minimum 1 minute"
		}
		return "Maximum 300 minutes"
	case FieldNotes:
		return "Notes must be at most 1000 characters"
	}
	return "Invalid value"
}
