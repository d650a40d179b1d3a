package form

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// Profile form fields.
const (
	FieldWeeklyMinutes   = "weeklyMinutesAvailable"
	FieldSessionsPerWeek = "sessionsPerWeek"
	FieldDynamic         = "dynamicPreference"
	FieldStructure       = "structurePreference"
	FieldPhilosophy      = "philosophyOpenness"
)

// Profile is the preferences form. Numeric fields hold the text as typed.
type Profile struct {
	WeeklyMinutes   string
	SessionsPerWeek string
	Dynamic         domain.DynamicPreference
	Structure       domain.StructurePreference
	Philosophy      domain.PhilosophyOpenness
	GoalIDs         []int64
}

type profileFields struct {
	WeeklyMinutes   int    `form:"weeklyMinutesAvailable" validate:"min=15,max=600"`
	SessionsPerWeek int    `form:"sessionsPerWeek" validate:"min=1,max=7"`
	Dynamic         string `form:"dynamicPreference" validate:"oneof=DYNAMIC STATIC NO_PREFERENCE"`
	Structure       string `form:"structurePreference" validate:"oneof=STRUCTURED CREATIVE NO_PREFERENCE"`
	Philosophy      string `form:"philosophyOpenness" validate:"oneof=OPEN NOT_OPEN NO_PREFERENCE"`
}

// NewProfile returns the form for p, or the defaults when p is nil.
func NewProfile(p *domain.Profile) Profile {
	if p == nil {
		return Profile{
			WeeklyMinutes:   strconv.Itoa(domain.DefaultWeeklyMinutes),
			SessionsPerWeek: strconv.Itoa(domain.DefaultSessionsPerWeek),
			Dynamic:         domain.DynamicPreferenceNone,
			Structure:       domain.StructurePreferenceNone,
			Philosophy:      domain.PhilosophyNone,
		}
	}
	return Profile{
		WeeklyMinutes:   strconv.Itoa(p.WeeklyMinutesAvailable),
		SessionsPerWeek: strconv.Itoa(p.SessionsPerWeek),
		Dynamic:         p.DynamicPreference,
		Structure:       p.StructurePreference,
		Philosophy:      p.PhilosophyOpenness,
		GoalIDs:         p.GoalIDs(),
	}
}

// Set returns a copy of f with field set to value.
func (f Profile) Set(field, value string) Profile {
	switch field {
	case FieldWeeklyMinutes:
		f.WeeklyMinutes = value
	case FieldSessionsPerWeek:
		f.SessionsPerWeek = value
	case FieldDynamic:
		f.Dynamic = domain.DynamicPreference(value)
	case FieldStructure:
		f.Structure = domain.StructurePreference(value)
	case FieldPhilosophy:
		f.Philosophy = domain.PhilosophyOpenness(value)
	}
	return f
}

// ToggleGoal returns a copy of f with goal id selected or deselected.
func (f Profile) ToggleGoal(id int64) Profile {
	ids := make([]int64, 0, len(f.GoalIDs)+1)
	found := false
	for _, g := range f.GoalIDs {
		if g == id {
			found = true
			continue
		}
		ids = append(ids, g)
	}
	if !found {
		ids = append(ids, id)
	}
	f.GoalIDs = ids
	return f
}

// HasGoal reports whether goal id is selected.
func (f Profile) HasGoal(id int64) bool {
	for _, g := range f.GoalIDs {
		if g == id {
			return true
		}
	}
	return false
}

func (f Profile) Validate() Errors {
	errs := Errors{}
	weekly, msg, ok := parseWhole(f.WeeklyMinutes, "Required")
	if !ok {
		errs[FieldWeeklyMinutes] = msg
	}
	sessions, msg, ok := parseWhole(f.SessionsPerWeek, "Required")
	if !ok {
		errs[FieldSessionsPerWeek] = msg
	}
	check(profileFields{
		WeeklyMinutes:   weekly,
		SessionsPerWeek: sessions,
		Dynamic:         string(f.Dynamic),
		Structure:       string(f.Structure),
		Philosophy:      string(f.Philosophy),
	}, errs, profileMessage)
	return errs
}

// Request builds the API payload. Call it only on a valid form.
func (f Profile) Request(userID int64) domain.ProfileRequest {
	weekly, _, _ := parseWhole(f.WeeklyMinutes, "")
	sessions, _, _ := parseWhole(f.SessionsPerWeek, "")
	ids := make([]int64, len(f.GoalIDs))
	copy(ids, f.GoalIDs)
	return domain.ProfileRequest{
		UserID:                 userID,
		WeeklyMinutesAvailable: weekly,
		SessionsPerWeek:        sessions,
		DynamicPreference:      f.Dynamic,
		StructurePreference:    f.Structure,
		PhilosophyOpenness:     f.Philosophy,
		GoalIDs:                ids,
	}
}

func profileMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "Min " + fe.Param()
	case "max":
		return "Max " + fe.Param()
	case "oneof":
		return "Choose one of the options"
	}
	return "Invalid value"
}
