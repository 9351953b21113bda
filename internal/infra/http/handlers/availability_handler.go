package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/studio-backend/internal/infra/http/middleware"
	"github.com/xavierca1/studio-backend/internal/usecase"
)

// Checagem de disponibilidade antes do submit do formulário. Consulta a MESMA
// fonte que o orquestrador; ainda assim o slot pode ser tomado entre a
// checagem e o POST /api/booking, que recheca.
type AvailabilityHandler struct {
	Calendar usecase.CalendarService
}

func NewAvailabilityHandler(calendar usecase.CalendarService) *AvailabilityHandler {
	return &AvailabilityHandler{Calendar: calendar}
}

type AvailabilityRequest struct {
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *AvailabilityHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AvailabilityResponse{
			Error: "Invalid JSON",
		})
		return
	}

	start, err := usecase.ParseWhen(req.PreferredDate, req.PreferredTime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AvailabilityResponse{
			Error: "Invalid date or time",
		})
		return
	}
	end := start.Add(time.Hour)

	available, err := h.Calendar.IsAvailable(r.Context(), start, end)
	if err != nil {
		middleware.RecordIntegrationError("gcal")
		writeJSON(w, http.StatusInternalServerError, AvailabilityResponse{
			Error: "Failed to check availability",
		})
		return
	}

	resp := AvailabilityResponse{
		Available: available,
		Start:     start.Format(time.RFC3339),
		End:       end.Format(time.RFC3339),
	}
	if !available {
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
