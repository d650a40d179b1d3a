package domain

// DynamicPreference says whether the user prefers flowing or held practice.
type DynamicPreference string

const (
	DynamicPreferenceDynamic DynamicPreference = "DYNAMIC"
	DynamicPreferenceStatic  DynamicPreference = "STATIC"
	DynamicPreferenceNone    DynamicPreference = "NO_PREFERENCE"
)

// StructurePreference says whether the user prefers fixed or varied sequences.
type StructurePreference string

const (
	StructurePreferenceStructured StructurePreference = "STRUCTURED"
	StructurePreferenceCreative   StructurePreference = "CREATIVE"
	StructurePreferenceNone       StructurePreference = "NO_PREFERENCE"
)

// PhilosophyOpenness says whether the user wants yoga philosophy in practice.
type PhilosophyOpenness string

const (
	PhilosophyOpen    PhilosophyOpenness = "OPEN"
	PhilosophyNotOpen PhilosophyOpenness = "NOT_OPEN"
	PhilosophyNone    PhilosophyOpenness = "NO_PREFERENCE"
)

// Selector orderings used by the profile form.
var (
	DynamicPreferences   = []DynamicPreference{DynamicPreferenceNone, DynamicPreferenceDynamic, DynamicPreferenceStatic}
	StructurePreferences = []StructurePreference{StructurePreferenceNone, StructurePreferenceStructured, StructurePreferenceCreative}
	PhilosophyOptions    = []PhilosophyOpenness{PhilosophyNone, PhilosophyOpen, PhilosophyNotOpen}
)

// Availability limits enforced by the profile form.
const (
	MinWeeklyMinutes   = 15
	MaxWeeklyMinutes   = 600
	MinSessionsPerWeek = 1
	MaxSessionsPerWeek = 7

	DefaultWeeklyMinutes   = 60
	DefaultSessionsPerWeek = 3
)

// Profile is the user's stored practice preferences.
type Profile struct {
	ID                     int64               `json:"id"`
	UserID                 int64               `json:"userId"`
	WeeklyMinutesAvailable int                 `json:"weeklyMinutesAvailable"`
	SessionsPerWeek        int                 `json:"sessionsPerWeek"`
	DynamicPreference      DynamicPreference   `json:"dynamicPreference"`
	StructurePreference    StructurePreference `json:"structurePreference"`
	PhilosophyOpenness     PhilosophyOpenness  `json:"philosophyOpenness"`
	Goals                  []Goal              `json:"goals"`
	CreatedAt              Timestamp           `json:"createdAt"`
	UpdatedAt              Timestamp           `json:"updatedAt"`
}

// ProfileRequest is the payload for creating or updating a profile.
type ProfileRequest struct {
	UserID                 int64               `json:"userId"`
	WeeklyMinutesAvailable int                 `json:"weeklyMinutesAvailable"`
	SessionsPerWeek        int                 `json:"sessionsPerWeek"`
	DynamicPreference      DynamicPreference   `json:"dynamicPreference"`
	StructurePreference    StructurePreference `json:"structurePreference"`
	PhilosophyOpenness     PhilosophyOpenness  `json:"philosophyOpenness"`
	GoalIDs                []int64             `json:"goalIds"`
}

// GoalIDs returns the IDs of the profile's selected goals.
func (p Profile) GoalIDs() []int64 {
	ids := make([]int64, 0, len(p.Goals))
	for _, g := range p.Goals {
		ids = append(ids, g.ID)
	}
	return ids
}

// SessionBudget is the whole number of minutes available per session, or 0
// when the profile has no sessions.
func (p Profile) SessionBudget() int {
	if p.SessionsPerWeek <= 0 {
		return 0
	}
	return p.WeeklyMinutesAvailable / p.SessionsPerWeek
}
