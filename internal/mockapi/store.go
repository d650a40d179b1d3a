package mockapi

import (
	"sort"
	"strings"
	"sync"

	"github.com/naveenspark/yogapath/pkg/domain"
)

type userRecord struct {
	identity     domain.Identity
	passwordHash []byte
}

// store is the mock backend's in-memory state.
type store struct {
	mu sync.Mutex

	nextID int64

	users        map[int64]*userRecord
	usersByEmail map[string]int64
	profiles     map[int64]*domain.Profile // by profile ID
	recs         map[int64][]domain.Recommendation
	logs         map[int64]*domain.PracticeLog

	goals       []domain.Goal
	styles      []domain.YogaStyle
	limitations []domain.Limitation
}

func newStore() *store {
	return &store{
		users:        make(map[int64]*userRecord),
		usersByEmail: make(map[string]int64),
		profiles:     make(map[int64]*domain.Profile),
		recs:         make(map[int64][]domain.Recommendation),
		logs:         make(map[int64]*domain.PracticeLog),
		goals:        seedGoals,
		styles:       seedStyles,
		limitations:  seedLimitations,
	}
}

// id returns the next identifier. Callers hold mu.
func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// profileForUser returns the user's profile. Callers hold mu.
func (s *store) profileForUser(userID int64) *domain.Profile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// goalsByID resolves goal IDs, dropping unknown ones. Callers hold mu.
func (s *store) goalsByID(ids []int64) ([]domain.Goal, bool) {
	out := make([]domain.Goal, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, g := range s.goals {
			if g.ID == id {
				out = append(out, g)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return out, true
}

// styleByName returns the seeded style with name.
func (s *store) styleByName(name string) (domain.YogaStyle, bool) {
	for _, st := range s.styles {
		if st.Name == name {
			return st, true
		}
	}
	return domain.YogaStyle{}, false
}

// logsForUser returns the user's logs within [start, end], newest first.
// Zero bounds are open. Callers hold mu.
func (s *store) logsForUser(userID int64, start, end domain.Date) []domain.PracticeLog {
	out := []domain.PracticeLog{}
	for _, l := range s.logs {
		if l.UserID != userID {
			continue
		}
		if !start.IsZero() && l.PracticeDate.Before(start.Time) {
			continue
		}
		if !end.IsZero() && l.PracticeDate.After(end.Time) {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PracticeDate.Equal(out[j].PracticeDate.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].PracticeDate.After(out[j].PracticeDate.Time)
	})
	return out
}

var seedGoals = []domain.Goal{
	{ID: 1, Name: "Flexibility", Description: "Increase range of motion", Notes: "Favors longer holds"},
	{ID: 2, Name: "Strength", Description: "Build muscular strength and stability"},
	{ID: 3, Name: "Stress Relief", Description: "Calm the nervous system", Notes: "Adds breathing and relaxation"},
	{ID: 4, Name: "Balance", Description: "Improve balance and coordination"},
	{ID: 5, Name: "Mindfulness", Description: "Cultivate present-moment awareness", Notes: "Adds meditation"},
	{ID: 6, Name: "Better Sleep", Description: "Wind down before bed"},
}

var seedStyles = []domain.YogaStyle{
	{ID: 1, Name: "Hatha", Description: "Foundational postures held at a steady pace"},
	{ID: 2, Name: "Vinyasa", Description: "Breath-linked flowing sequences"},
	{ID: 3, Name: "Ashtanga", Description: "A fixed, vigorous series"},
	{ID: 4, Name: "Yin", Description: "Long passive holds targeting connective tissue"},
	{ID: 5, Name: "Restorative", Description: "Supported postures for deep rest"},
	{ID: 6, Name: "Kundalini", Description: "Breath, movement, and mantra", Notes: "Includes chanting"},
}

var seedLimitations = []domain.Limitation{
	{ID: 1, Name: "Lower back pain", Description: "Avoid deep forward folds and loaded twists", Notes: "Bend the knees in folds"},
	{ID: 2, Name: "Knee injury", Description: "Avoid deep knee flexion", Notes: "Pad under the knees"},
	{ID: 3, Name: "Wrist pain", Description: "Limit weight bearing on the hands", Notes: "Use forearm variations"},
	{ID: 4, Name: "High blood pressure", Description: "Avoid long inversions and breath retention"},
	{ID: 5, Name: "Pregnancy", Description: "Avoid closed twists and lying on the belly", Notes: "Consult a prenatal instructor"},
}
