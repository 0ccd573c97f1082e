package prayerlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"prayerlog/internal/journal"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	// Data carries the committed entity when only the save failed.
	Data any `json:"data,omitempty"`
}

type AddSessionRequest struct {
	Duration int           `json:"duration"`
	Notes    journal.Notes `json:"notes"`
	Date     string        `json:"date,omitempty"`
}

type CreatePrayerRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    journal.Category `json:"category"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps err to a status code. committed is returned alongside a
// storage failure, since the change itself already happened.
func writeError(w http.ResponseWriter, err error, committed any) {
	kind := ErrorKind(err)
	resp := ErrorResponse{Error: kind, Message: err.Error()}
	status := http.StatusInternalServerError

	switch kind {
	case KindValidation:
		var vErr *journal.ValidationError
		errors.As(err, &vErr)
		resp.Fields = vErr.FieldErrors
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindStorage:
		resp.Data = committed
	default:
		log.Error("Unexpected error", "error", err)
	}
	writeJSON(w, status, resp)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &journal.ValidationError{FieldErrors: map[string]string{"body": "invalid JSON: " + err.Error()}}
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &journal.ValidationError{FieldErrors: map[string]string{key: "must be an integer"}}
	}
	return n, nil
}

// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce plain
// @Success 200 {string} string "Healthy"
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

// @Summary List sessions
// @Description Sessions on one day (?date=YYYY-MM-DD) or in one month (?year=&month=)
// @Tags sessions
// @Produce json
// @Param date query string false "Calendar day"
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {array} journal.Session
// @Failure 400 {object} ErrorResponse
// @Router /api/sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if date := q.Get("date"); date != "" {
		sessions, err := s.State.SessionsOnDate(date)
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, sessions)
		return
	}

	now := s.State.now()
	year, err := queryInt(r, "year", now.Year())
	if err != nil {
		writeError(w, err, nil)
		return
	}
	month, err := queryInt(r, "month", int(now.Month()))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	sessions, err := s.State.SessionsInMonth(year, time.Month(month))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// @Summary Log a prayer session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body AddSessionRequest true "Completed session"
// @Success 201 {object} journal.Session
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sessions [post]
func (s *Server) AddSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req AddSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, nil)
		return
	}
	session, err := s.State.AddSession(r.Context(), req.Duration, req.Notes, req.Date)
	if err != nil {
		if ErrorKind(err) == KindStorage {
			writeError(w, err, session)
		} else {
			writeError(w, err, nil)
		}
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// @Summary Distinct session dates
// @Tags sessions
// @Produce json
// @Success 200 {array} string
// @Router /api/sessions/dates [get]
func (s *Server) SessionDatesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.DistinctDates())
}

// @Summary List prayers
// @Tags prayers
// @Produce json
// @Param filter query string false "all, active or answered"
// @Success 200 {array} journal.Prayer
// @Failure 400 {object} ErrorResponse
// @Router /api/prayers [get]
func (s *Server) ListPrayersHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := journal.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, s.State.Prayers(filter))
}

// @Summary Create a prayer request
// @Tags prayers
// @Accept json
// @Produce json
// @Param prayer body CreatePrayerRequest true "Prayer"
// @Success 201 {object} journal.Prayer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/prayers [post]
func (s *Server) CreatePrayerHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePrayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, nil)
		return
	}
	prayer, err := s.State.CreatePrayer(r.Context(), req.Title, req.Description, req.Category)
	respondPrayer(w, http.StatusCreated, prayer, err)
}

// @Summary Mark a prayer answered
// @Tags prayers
// @Produce json
// @Param id path string true "Prayer id"
// @Success 200 {object} journal.Prayer
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/prayers/{id}/answer [post]
func (s *Server) AnswerPrayerHandler(w http.ResponseWriter, r *http.Request) {
	prayer, err := s.State.MarkAnswered(r.Context(), chi.URLParam(r, "id"))
	respondPrayer(w, http.StatusOK, prayer, err)
}

// @Summary Get a prayer
// @Tags prayers
// @Produce json
// @Param id path string true "Prayer id"
// @Success 200 {object} journal.Prayer
// @Failure 404 {object} ErrorResponse
// @Router /api/prayers/{id} [get]
func (s *Server) GetPrayerHandler(w http.ResponseWriter, r *http.Request) {
	prayer, err := s.State.Prayer(chi.URLParam(r, "id"))
	respondPrayer(w, http.StatusOK, prayer, err)
}

// @Summary Delete a prayer
// @Tags prayers
// @Param id path string true "Prayer id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/prayers/{id} [delete]
func (s *Server) DeletePrayerHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.State.DeletePrayer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondPrayer(w http.ResponseWriter, status int, prayer journal.Prayer, err error) {
	switch {
	case err == nil:
		writeJSON(w, status, prayer)
	case ErrorKind(err) == KindStorage:
		writeError(w, err, prayer)
	default:
		writeError(w, err, nil)
	}
}

// @Summary Current prayer stats
// @Tags stats
// @Produce json
// @Success 200 {object} stats.PrayerStats
// @Router /api/stats [get]
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.Stats())
}

// @Summary Calendar month summary
// @Tags stats
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Param month query int false "Month 1-12, defaults to the current one"
// @Success 200 {object} stats.MonthSummary
// @Failure 400 {object} ErrorResponse
// @Router /api/stats/month [get]
func (s *Server) MonthHandler(w http.ResponseWriter, r *http.Request) {
	now := s.State.now()
	year, err := queryInt(r, "year", now.Year())
	if err != nil {
		writeError(w, err, nil)
		return
	}
	month, err := queryInt(r, "month", int(now.Month()))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	summary, err := s.State.Month(year, time.Month(month))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// @Summary Per-day prayer time
// @Tags stats
// @Produce json
// @Param days query int false "Trailing days, default 7"
// @Success 200 {array} stats.DayTotal
// @Failure 400 {object} ErrorResponse
// @Router /api/stats/daily [get]
func (s *Server) DailyHandler(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 7)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	totals, err := s.State.Daily(days)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// @Summary ACTS guide stages
// @Tags guide
// @Produce json
// @Success 200 {array} Stage
// @Router /api/guide [get]
func (s *Server) GuideHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Guide.Stages())
}

// @Summary One ACTS guide stage
// @Tags guide
// @Produce json
// @Param id path string true "Stage id"
// @Success 200 {object} Stage
// @Failure 404 {object} ErrorResponse
// @Router /api/guide/{id} [get]
func (s *Server) GuideStageHandler(w http.ResponseWriter, r *http.Request) {
	stage, ok := s.Guide.Stage(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, fmt.Errorf("guide stage %q: %w", chi.URLParam(r, "id"), journal.ErrNotFound), nil)
		return
	}
	writeJSON(w, http.StatusOK, stage)
}
