package mockapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// --- Reference data ---

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.goals)
}

func (s *Server) handleListStyles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.styles)
}

func (s *Server) handleListLimitations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.limitations)
}

// --- Profiles ---

type profileBody struct {
	UserID                 int64                      `json:"userId" validate:"required"`
	WeeklyMinutesAvailable int                        `json:"weeklyMinutesAvailable" validate:"min=15,max=600"`
	SessionsPerWeek        int                        `json:"sessionsPerWeek" validate:"min=1,max=7"`
	DynamicPreference      domain.DynamicPreference   `json:"dynamicPreference" validate:"oneof=DYNAMIC STATIC NO_PREFERENCE"`
	StructurePreference    domain.StructurePreference `json:"structurePreference" validate:"oneof=STRUCTURED CREATIVE NO_PREFERENCE"`
	PhilosophyOpenness     domain.PhilosophyOpenness  `json:"philosophyOpenness" validate:"oneof=OPEN NOT_OPEN NO_PREFERENCE"`
	GoalIDs                []int64                    `json:"goalIds"`
}

func (b profileBody) apply(p *domain.Profile, goals []domain.Goal) {
	p.WeeklyMinutesAvailable = b.WeeklyMinutesAvailable
	p.SessionsPerWeek = b.SessionsPerWeek
	p.DynamicPreference = b.DynamicPreference
	p.StructurePreference = b.StructurePreference
	p.PhilosophyOpenness = b.PhilosophyOpenness
	p.Goals = goals
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileBody
	if !s.bind(w, r, &body) {
		return
	}
	userID := currentUser(r)
	if body.UserID != userID {
		writeError(w, http.StatusForbidden, "Cannot create a profile for another user")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.profileForUser(userID) != nil {
		writeError(w, http.StatusConflict, "Profile already exists")
		return
	}
	goals, ok := s.store.goalsByID(body.GoalIDs)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown goal")
		return
	}
	now := domain.NewTimestamp(s.now())
	p := &domain.Profile{ID: s.store.id(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	body.apply(p, goals)
	s.store.profiles[p.ID] = p
	s.logger.Info("profile created", zap.Int64("profile_id", p.ID), zap.Int64("user_id", userID))
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileBody
	if !s.bind(w, r, &body) {
		return
	}
	userID := currentUser(r)
	id := pathID(r, "id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.store.profiles[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if p.UserID != userID || body.UserID != userID {
		writeError(w, http.StatusForbidden, "Not your profile")
		return
	}
	goals, ok := s.store.goalsByID(body.GoalIDs)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown goal")
		return
	}
	body.apply(p, goals)
	p.UpdatedAt = domain.NewTimestamp(s.now())
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "userId")
	if userID != currentUser(r) {
		writeError(w, http.StatusForbidden, "Not your profile")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p := s.store.profileForUser(userID)
	if p == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- Recommendations ---

// ownedProfile returns the profile with id when it belongs to the caller,
// writing the error response otherwise. Callers hold mu.
func (s *Server) ownedProfile(w http.ResponseWriter, r *http.Request, id int64) (*domain.Profile, bool) {
	p, ok := s.store.profiles[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Profile not found")
		return nil, false
	}
	if p.UserID != currentUser(r) {
		writeError(w, http.StatusForbidden, "Not your profile")
		return nil, false
	}
	return p, true
}

// withOutdated returns the profile's recommendations newest first with the
// outdated flag computed against the current profile. Callers hold mu.
func (s *Server) withOutdated(p *domain.Profile) []domain.Recommendation {
	recs := s.store.recs[p.ID]
	out := make([]domain.Recommendation, len(recs))
	for i, rec := range recs {
		rec.IsOutdated = p.UpdatedAt.After(rec.CreatedAt.Time)
		out[len(recs)-1-i] = rec
	}
	return out
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.ownedProfile(w, r, pathID(r, "profileId"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.withOutdated(p))
}

func (s *Server) handleLatestRecommendation(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.ownedProfile(w, r, pathID(r, "profileId"))
	if !ok {
		return
	}
	recs := s.withOutdated(p)
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "No recommendation yet")
		return
	}
	writeJSON(w, http.StatusOK, recs[0])
}

func (s *Server) handleGenerateRecommendation(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.ownedProfile(w, r, pathID(r, "profileId"))
	if !ok {
		return
	}
	rec := s.generate(p)
	rec.ID = s.store.id()
	s.store.recs[p.ID] = append(s.store.recs[p.ID], rec)
	s.logger.Info("recommendation generated",
		zap.Int64("profile_id", p.ID),
		zap.Int("total_minutes", rec.TotalMinutesPerSession),
	)
	writeJSON(w, http.StatusCreated, rec)
}

// --- Practice logs ---

type logBody struct {
	UserID           int64       `json:"userId" validate:"required"`
	PracticeDate     domain.Date `json:"practiceDate"`
	MinutesPracticed int         `json:"minutesPracticed" validate:"min=1,max=300"`
	Notes            string      `json:"notes" validate:"max=1000"`
}

func (s *Server) bindLog(w http.ResponseWriter, r *http.Request) (logBody, bool) {
	var body logBody
	if !s.bind(w, r, &body) {
		return body, false
	}
	if body.PracticeDate.IsZero() {
		writeError(w, http.StatusBadRequest, "practiceDate is required")
		return body, false
	}
	if body.UserID != currentUser(r) {
		writeError(w, http.StatusForbidden, "Cannot log practice for another user")
		return body, false
	}
	return body, true
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	body, ok := s.bindLog(w, r)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	l := &domain.PracticeLog{
		ID:               s.store.id(),
		UserID:           body.UserID,
		PracticeDate:     body.PracticeDate,
		MinutesPracticed: body.MinutesPracticed,
		Notes:            body.Notes,
		CreatedAt:        domain.NewTimestamp(s.now()),
	}
	s.store.logs[l.ID] = l
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	body, ok := s.bindLog(w, r)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	l, ok := s.store.logs[pathID(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Practice log not found")
		return
	}
	if l.UserID != body.UserID {
		writeError(w, http.StatusForbidden, "Not your practice log")
		return
	}
	l.PracticeDate = body.PracticeDate
	l.MinutesPracticed = body.MinutesPracticed
	l.Notes = body.Notes
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	id := pathID(r, "id")
	l, ok := s.store.logs[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Practice log not found")
		return
	}
	if l.UserID != currentUser(r) {
		writeError(w, http.StatusForbidden, "Not your practice log")
		return
	}
	delete(s.store.logs, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	userID := pathID(r, "userId")
	if userID != currentUser(r) {
		writeError(w, http.StatusForbidden, "Not your practice logs")
		return
	}
	var start, end domain.Date
	for key, dst := range map[string]*domain.Date{"startDate": &start, "endDate": &end} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, key+" must be YYYY-MM-DD")
			return
		}
		*dst = d
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, s.store.logsForUser(userID, start, end))
}
