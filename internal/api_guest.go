package prayerlog

import (
	"net/http"
)

type MergeResponse struct {
	Imported int `json:"imported"`
}

// @Summary List guest prayers
// @Tags guest
// @Produce json
// @Success 200 {array} journal.Prayer
// @Router /api/guest/prayers [get]
func (s *Server) ListGuestPrayersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.GuestPrayers())
}

// @Summary Create a guest prayer
// @Description Prayers made before signing in; they are merged into the account later.
// @Tags guest
// @Accept json
// @Produce json
// @Param prayer body CreatePrayerRequest true "Prayer"
// @Success 201 {object} journal.Prayer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/guest/prayers [post]
func (s *Server) CreateGuestPrayerHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePrayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, nil)
		return
	}
	prayer, err := s.State.CreateGuestPrayer(r.Context(), req.Title, req.Description, req.Category)
	respondPrayer(w, http.StatusCreated, prayer, err)
}

// @Summary Drain guest prayers
// @Description Returns every guest prayer and clears the guest list.
// @Tags guest
// @Produce json
// @Success 200 {array} journal.Prayer
// @Failure 500 {object} ErrorResponse
// @Router /api/guest/drain [post]
func (s *Server) DrainGuestHandler(w http.ResponseWriter, r *http.Request) {
	drained, err := s.State.DrainGuestPrayers(r.Context())
	if err != nil {
		writeError(w, err, drained)
		return
	}
	writeJSON(w, http.StatusOK, drained)
}

// @Summary Merge guest prayers into the account
// @Tags guest
// @Produce json
// @Success 200 {object} MergeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/guest/merge [post]
func (s *Server) MergeGuestHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.State.MergeGuestPrayers(r.Context())
	if err != nil {
		writeError(w, err, MergeResponse{Imported: n})
		return
	}
	writeJSON(w, http.StatusOK, MergeResponse{Imported: n})
}
