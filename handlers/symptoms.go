// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

const (
	maxSymptomMatches = 3
	maxSymptomTextLen = 2000
)

// SymptomAnalyzer matches free text against a table of conditions and
// recommends the specialist for the best match
type SymptomAnalyzer struct {
	conditions []models.Condition
	// symptoms in table order, so ties resolve the same way every run
	symptoms []string
	index    map[string][]int
}

// NewSymptomAnalyzer builds the symptom → condition index
func NewSymptomAnalyzer(conditions []models.Condition) *SymptomAnalyzer {
	a := &SymptomAnalyzer{
		conditions: conditions,
		index:      make(map[string][]int),
	}
	for i, c := range conditions {
		for _, s := range c.Symptoms {
			s = strings.ToLower(s)
			if _, seen := a.index[s]; !seen {
				a.symptoms = append(a.symptoms, s)
			}
			a.index[s] = append(a.index[s], i)
		}
	}
	return a
}

// Analyze scores each condition by how many of its symptoms appear in text
// and returns the top matches, best first. With no match the general
// practitioner is suggested.
func (a *SymptomAnalyzer) Analyze(text string) models.SymptomAnalysis {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))

	var found []*models.SymptomMatch
	byCondition := make(map[int]*models.SymptomMatch)
	for _, symptom := range a.symptoms {
		if !strings.Contains(normalized, symptom) {
			continue
		}
		for _, ci := range a.index[symptom] {
			m, ok := byCondition[ci]
			if !ok {
				c := a.conditions[ci]
				m = &models.SymptomMatch{
					Condition:       c.Name,
					Specialist:      c.Specialist,
					Urgency:         c.Urgency,
					Description:     c.Description,
					Treatment:       c.Treatment,
					WhenToSeeDoctor: c.WhenToSeeDoctor,
				}
				byCondition[ci] = m
				found = append(found, m)
			}
			m.MatchedSymptoms = append(m.MatchedSymptoms, symptom)
			m.Score++
		}
	}

	if len(found) == 0 {
		return models.SymptomAnalysis{
			Matches:    []models.SymptomMatch{},
			Specialist: models.DefaultSpecialist,
			Advice:     models.NoMatchAdvice,
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score > found[j].Score
	})
	if len(found) > maxSymptomMatches {
		found = found[:maxSymptomMatches]
	}

	matches := make([]models.SymptomMatch, 0, len(found))
	for _, m := range found {
		matches = append(matches, *m)
	}
	top := matches[0]

	return models.SymptomAnalysis{
		FoundMatches: true,
		Matches:      matches,
		Specialist:   top.Specialist,
		Urgency:      top.Urgency,
		Advice:       models.UrgencyAdvice[top.Urgency],
	}
}

// BySpecialist returns the conditions a specialist treats, matched case-insensitively
func (a *SymptomAnalyzer) BySpecialist(specialist string) []models.Condition {
	out := []models.Condition{}
	for _, c := range a.conditions {
		if strings.EqualFold(c.Specialist, specialist) {
			out = append(out, c)
		}
	}
	return out
}

type SymptomHandler struct {
	analyzer *SymptomAnalyzer
}

func NewSymptomHandler() *SymptomHandler {
	return &SymptomHandler{analyzer: NewSymptomAnalyzer(models.Conditions)}
}

// Analyze handles POST /api/symptoms/analyze
// The text is health data: it is never logged or stored.
func (h *SymptomHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.AnalyzeSymptomsRequest
	if !parseBody(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	if utf8.RuneCountInString(text) > maxSymptomTextLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text must be at most 2000 characters")
		return
	}

	analysis := h.analyzer.Analyze(text)

	slog.Info("symptoms analyzed", "user_id", claims.UserID, "matches", len(analysis.Matches), "specialist", analysis.Specialist)

	middleware.JSONResponse(w, http.StatusOK, analysis)
}

// Conditions handles GET /api/symptoms/conditions?specialist=
func (h *SymptomHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	conditions := h.analyzer.conditions
	if specialist := strings.TrimSpace(r.URL.Query().Get("specialist")); specialist != "" {
		conditions = h.analyzer.BySpecialist(specialist)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConditionsResponse{Conditions: conditions})
}
