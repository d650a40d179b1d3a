package mockapi

import (
	"github.com/naveenspark/yogapath/pkg/domain"
)

// Session length bounds for generated plans.
const (
	minSessionMinutes = 10
	maxSessionMinutes = 90
)

// generate builds a plan from a fixed split of the profile's per-session
// budget. Callers hold mu.
func (s *Server) generate(p *domain.Profile) domain.Recommendation {
	total := p.SessionBudget()
	if total < minSessionMinutes {
		total = minSessionMinutes
	}
	if total > maxSessionMinutes {
		total = maxSessionMinutes
	}

	asana, pranayama, meditation, mantra := 55, 15, 15, 5
	if p.PhilosophyOpenness != domain.PhilosophyOpen {
		meditation += mantra
		mantra = 0
	}
	if hasGoal(p, "Stress Relief") || hasGoal(p, "Mindfulness") {
		asana -= 10
		meditation += 5
		pranayama += 5
	}

	rec := domain.Recommendation{
		ProfileID:              p.ID,
		AsanaMinutes:           total * asana / 100,
		PranayamaMinutes:       total * pranayama / 100,
		MeditationMinutes:      total * meditation / 100,
		MantraMinutes:          total * mantra / 100,
		TotalMinutesPerSession: total,
		Styles:                 s.pickStyles(p),
		CreatedAt:              domain.NewTimestamp(s.now()),
	}
	rec.RelaxationMinutes = total - rec.AsanaMinutes - rec.PranayamaMinutes - rec.MeditationMinutes - rec.MantraMinutes
	return rec
}

func (s *Server) pickStyles(p *domain.Profile) []domain.YogaStyle {
	var names []string
	switch p.DynamicPreference {
	case domain.DynamicPreferenceDynamic:
		names = []string{"Vinyasa", "Ashtanga"}
	case domain.DynamicPreferenceStatic:
		names = []string{"Hatha", "Yin"}
	default:
		names = []string{"Hatha", "Vinyasa"}
	}
	switch p.StructurePreference {
	case domain.StructurePreferenceStructured:
		names = append(names, "Ashtanga")
	case domain.StructurePreferenceCreative:
		names = append(names, "Vinyasa")
	}
	if p.PhilosophyOpenness == domain.PhilosophyOpen {
		names = append(names, "Kundalini")
	}
	if hasGoal(p, "Stress Relief") || hasGoal(p, "Better Sleep") {
		names = append(names, "Restorative")
	}

	seen := make(map[string]bool, len(names))
	styles := make([]domain.YogaStyle, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if st, ok := s.store.styleByName(n); ok {
			styles = append(styles, st)
		}
	}
	return styles
}

func hasGoal(p *domain.Profile, name string) bool {
	for _, g := range p.Goals {
		if g.Name == name {
			return true
		}
	}
	return false
}
