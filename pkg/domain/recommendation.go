package domain

// Recommendation is a backend-generated practice plan for one profile version.
type Recommendation struct {
	ID                     int64       `json:"id"`
	ProfileID              int64       `json:"profileId"`
	AsanaMinutes           int         `json:"asanaMinutes"`
	PranayamaMinutes       int         `json:"pranayamaMinutes"`
	MeditationMinutes      int         `json:"meditationMinutes"`
	RelaxationMinutes      int         `json:"relaxationMinutes"`
	MantraMinutes          int         `json:"mantraMinutes"`
	TotalMinutesPerSession int         `json:"totalMinutesPerSession"`
	Styles                 []YogaStyle `json:"styles"`
	IsOutdated             bool        `json:"isOutdated"`
	CreatedAt              Timestamp   `json:"createdAt"`
}

// StyleNames returns the names of the recommended styles in order.
func (r Recommendation) StyleNames() []string {
	names := make([]string, 0, len(r.Styles))
	for _, s := range r.Styles {
		names = append(names, s.Name)
	}
	return names
}

// IsOutdated reports whether rec no longer reflects profile: the backend
// flagged it, it belongs to another profile, or the profile changed after it
// was generated.
func IsOutdated(profile *Profile, rec *Recommendation) bool {
	if rec == nil {
		return false
	}
	if rec.IsOutdated || profile == nil {
		return rec.IsOutdated
	}
	if rec.ProfileID != profile.ID {
		return true
	}
	if profile.UpdatedAt.IsZero() || rec.CreatedAt.IsZero() {
		return false
	}
	return profile.UpdatedAt.After(rec.CreatedAt.Time)
}

// ExceedsSessionBudget reports whether the recommended session is longer than
// the minutes the profile has available per session.
func ExceedsSessionBudget(profile *Profile, rec *Recommendation) bool {
	if profile == nil || rec == nil || profile.SessionsPerWeek <= 0 {
		return false
	}
	return rec.TotalMinutesPerSession > profile.SessionBudget()
}
