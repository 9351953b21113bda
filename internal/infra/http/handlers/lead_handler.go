package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/studio-backend/internal/entity"
)

// Leituras administrativas sobre os leads capturados pelo fluxo de agendamento
type LeadHandler struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{LeadRepo: leadRepo}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	leads, err := h.LeadRepo.List(r.Context(), limit)
	if err != nil {
		log.Printf("❌ [Admin] Falha ao listar leads: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list leads"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	lead, err := h.LeadRepo.FindByID(r.Context(), leadID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Lead not found"})
			return
		}
		log.Printf("❌ [Admin] Falha ao buscar lead %s: %v", leadID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load lead"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
