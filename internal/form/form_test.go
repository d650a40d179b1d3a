package form

import (
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/yogapath/pkg/domain"
)

func TestLoginValidate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     map[string]string
	}{
		{"valid", "a@x.com", "secret1", nil},
		{"empty", "", "", map[string]string{
			FieldEmail:    "Email is required",
			FieldPassword: "Password is required",
		}},
		{"bad email", "a@x", "secret1", map[string]string{FieldEmail: "Invalid email format"}},
		{"space in email", "a b@x.com", "secret1", map[string]string{FieldEmail: "Invalid email format"}},
		{"short password", "a@x.com", "12345", map[string]string{FieldPassword: "Password must be at least 6 characters"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Login{}.Set(FieldEmail, tt.email).Set(FieldPassword, tt.password)
			assertErrors(t, f.Validate(), tt.want)
		})
	}
}

func TestLoginSetReturnsCopy(t *testing.T) {
	orig := Login{Email: "a@x.com"}
	next := orig.Set(FieldEmail, "b@x.com")
	if orig.Email != "a@x.com" {
		t.Errorf("Set mutated receiver: %q", orig.Email)
	}
	if next.Value(FieldEmail) != "b@x.com" {
		t.Errorf("Value(email) = %q", next.Value(FieldEmail))
	}
}

func TestRegisterValidate(t *testing.T) {
	tests := []struct {
		name string
		form Register
		want map[string]string
	}{
		{"valid", Register{Name: "Asha", Email: "a@x.com", Password: "secret1"}, nil},
		{"missing name", Register{Email: "a@x.com", Password: "secret1"}, map[string]string{FieldName: "Name is required"}},
		{"short name", Register{Name: "A", Email: "a@x.com", Password: "secret1"}, map[string]string{FieldName: "Name must be at least 2 characters"}},
		{"long name", Register{Name: strings.Repeat("n", 101), Email: "a@x.com", Password: "secret1"}, map[string]string{FieldName: "Name must be less than 100 characters"}},
		{"unicode name counts runes", Register{Name: "Ää", Email: "a@x.com", Password: "secret1"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertErrors(t, tt.form.Validate(), tt.want)
		})
	}
}

func TestRegisterRequestTrims(t *testing.T) {
	req := Register{Name: "  Asha ", Email: " a@x.com ", Password: " secret1"}.Request()
	if req.Name != "Asha" || req.Email != "a@x.com" || req.Password != " secret1" {
		t.Errorf("Request() = %+v", req)
	}
}

func TestProfileDefaults(t *testing.T) {
	f := NewProfile(nil)
	if f.WeeklyMinutes != "60" || f.SessionsPerWeek != "3" {
		t.Errorf("defaults = %q/%q, want 60/3", f.WeeklyMinutes, f.SessionsPerWeek)
	}
	if f.Dynamic != domain.DynamicPreferenceNone || f.Structure != domain.StructurePreferenceNone || f.Philosophy != domain.PhilosophyNone {
		t.Errorf("preference defaults = %+v", f)
	}
	if !f.Validate().OK() {
		t.Errorf("default form invalid: %v", f.Validate())
	}
}

func TestProfileFromExisting(t *testing.T) {
	p := &domain.Profile{
		WeeklyMinutesAvailable: 120,
		SessionsPerWeek:        4,
		DynamicPreference:      domain.DynamicPreferenceDynamic,
		StructurePreference:    domain.StructurePreferenceCreative,
		PhilosophyOpenness:     domain.PhilosophyOpen,
		Goals:                  []domain.Goal{{ID: 2}, {ID: 5}},
	}
	f := NewProfile(p)
	if f.WeeklyMinutes != "120" || f.SessionsPerWeek != "4" {
		t.Errorf("numbers = %q/%q", f.WeeklyMinutes, f.SessionsPerWeek)
	}
	if !f.HasGoal(2) || !f.HasGoal(5) || f.HasGoal(3) {
		t.Errorf("goals = %v", f.GoalIDs)
	}
}

func TestProfileValidate(t *testing.T) {
	base := NewProfile(nil)
	tests := []struct {
		name  string
		field string
		value string
		want  map[string]string
	}{
		{"weekly empty", FieldWeeklyMinutes, "", map[string]string{FieldWeeklyMinutes: "Required"}},
		{"weekly low", FieldWeeklyMinutes, "14", map[string]string{FieldWeeklyMinutes: "Min 15"}},
		{"weekly high", FieldWeeklyMinutes, "601", map[string]string{FieldWeeklyMinutes: "Max 600"}},
		{"weekly bounds ok", FieldWeeklyMinutes, "600", nil},
		{"weekly text", FieldWeeklyMinutes, "lots", map[string]string{FieldWeeklyMinutes: "Must be a whole number"}},
		{"sessions zero", FieldSessionsPerWeek, "0", map[string]string{FieldSessionsPerWeek: "Min 1"}},
		{"sessions eight", FieldSessionsPerWeek, "8", map[string]string{FieldSessionsPerWeek: "Max 7"}},
		{"bad preference", FieldDynamic, "FAST", map[string]string{FieldDynamic: "Choose one of the options"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertErrors(t, base.Set(tt.field, tt.value).Validate(), tt.want)
		})
	}
}

func TestProfileToggleGoal(t *testing.T) {
	f := NewProfile(nil)
	g := f.ToggleGoal(4).ToggleGoal(7)
	if len(f.GoalIDs) != 0 {
		t.Errorf("ToggleGoal mutated receiver: %v", f.GoalIDs)
	}
	if !g.HasGoal(4) || !g.HasGoal(7) {
		t.Errorf("goals = %v", g.GoalIDs)
	}
	g = g.ToggleGoal(4)
	if g.HasGoal(4) || !g.HasGoal(7) {
		t.Errorf("after untoggle goals = %v", g.GoalIDs)
	}

	req := g.Set(FieldWeeklyMinutes, " 90 ").Request(12)
	if req.UserID != 12 || req.WeeklyMinutesAvailable != 90 || req.SessionsPerWeek != 3 {
		t.Errorf("Request() = %+v", req)
	}
	if len(req.GoalIDs) != 1 || req.GoalIDs[0] != 7 {
		t.Errorf("Request().GoalIDs = %v", req.GoalIDs)
	}
}

func TestPracticeLogDefaults(t *testing.T) {
	today := time.Date(2025, 6, 1, 18, 30, 0, 0, time.Local)
	f := NewPracticeLog(today)
	if f.Date != "2025-06-01" || f.Minutes != "30" || f.Notes != "" {
		t.Errorf("defaults = %+v", f)
	}
	if !f.Validate().OK() {
		t.Errorf("default form invalid: %v", f.Validate())
	}
}

func TestPracticeLogValidate(t *testing.T) {
	base := NewPracticeLog(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	tests := []struct {
		name  string
		field string
		value string
		want  map[string]string
	}{
		{"zero minutes", FieldMinutes, "0", map[string]string{FieldMinutes: "Minimum 1 minute"}},
		{"too many minutes", FieldMinutes, "301", map[string]string{FieldMinutes: "Maximum 300 minutes"}},
		{"one minute", FieldMinutes, "1", nil},
		{"three hundred", FieldMinutes, "300", nil},
		{"empty minutes", FieldMinutes, "", map[string]string{FieldMinutes: "Minutes is required"}},
		{"empty date", FieldDate, "", map[string]string{FieldDate: "Date is required"}},
		{"bad date", FieldDate, "06/01/2025", map[string]string{FieldDate: "Date must be YYYY-MM-DD"}},
		{"impossible date", FieldDate, "2025-02-30", map[string]string{FieldDate: "Date must be YYYY-MM-DD"}},
		{"long notes", FieldNotes, strings.Repeat("x", MaxNotesLen+1), map[string]string{FieldNotes: "Notes must be at most 1000 characters"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertErrors(t, base.Set(tt.field, tt.value).Validate(), tt.want)
		})
	}
}

func TestPracticeLogRequest(t *testing.T) {
	f := PracticeLog{Date: "2025-03-04", Minutes: "45", Notes: "  hips  "}
	req := f.Request(8)
	if req.UserID != 8 || req.MinutesPracticed != 45 || req.Notes != "hips" {
		t.Errorf("Request() = %+v", req)
	}
	if req.PracticeDate.String() != "2025-03-04" {
		t.Errorf("PracticeDate = %q", req.PracticeDate.String())
	}

	edit := EditPracticeLog(domain.PracticeLog{PracticeDate: req.PracticeDate, MinutesPracticed: 45, Notes: "hips"})
	if edit.Date != "2025-03-04" || edit.Minutes != "45" || edit.Notes != "hips" {
		t.Errorf("EditPracticeLog() = %+v", edit)
	}
}

func assertErrors(t *testing.T, got Errors, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for field, msg := range want {
		if got.Get(field) != msg {
			t.Errorf("errors[%s] = %q, want %q", field, got.Get(field), msg)
		}
	}
}
