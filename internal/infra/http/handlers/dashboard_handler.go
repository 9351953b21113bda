package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/studio-backend/internal/entity"
)

// Leituras do painel do cliente: projetos, pedidos e faturas de uma conta.
// Só leitura; escrita acontece pelos fluxos internos.
type DashboardHandler struct {
	ClientRepo  entity.ClientAccountRepositoryInterface
	ProjectRepo entity.ProjectRepositoryInterface
	OrderRepo   entity.OrderRepositoryInterface
	InvoiceRepo entity.InvoiceRepositoryInterface
}

func NewDashboardHandler(
	clientRepo entity.ClientAccountRepositoryInterface,
	projectRepo entity.ProjectRepositoryInterface,
	orderRepo entity.OrderRepositoryInterface,
	invoiceRepo entity.InvoiceRepositoryInterface,
) *DashboardHandler {
	return &DashboardHandler{
		ClientRepo:  clientRepo,
		ProjectRepo: projectRepo,
		OrderRepo:   orderRepo,
		InvoiceRepo: invoiceRepo,
	}
}

func (h *DashboardHandler) resolveClient(w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID := chi.URLParam(r, "id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Client id is required"})
		return "", false
	}

	if _, err := h.ClientRepo.FindByID(r.Context(), clientID); err != nil {
		if err == entity.ErrClientNotFound {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Client not found"})
			return "", false
		}
		log.Printf("❌ [Dashboard] Falha ao buscar cliente %s: %v", clientID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load client"})
		return "", false
	}

	return clientID, true
}

func (h *DashboardHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.resolveClient(w, r)
	if !ok {
		return
	}

	projects, err := h.ProjectRepo.FindByClientID(r.Context(), clientID)
	if err != nil {
		log.Printf("❌ [Dashboard] Falha ao listar projetos de %s: %v", clientID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load projects"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *DashboardHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.resolveClient(w, r)
	if !ok {
		return
	}

	orders, err := h.OrderRepo.FindByClientID(r.Context(), clientID)
	if err != nil {
		log.Printf("❌ [Dashboard] Falha ao listar pedidos de %s: %v", clientID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load orders"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *DashboardHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.resolveClient(w, r)
	if !ok {
		return
	}

	invoices, err := h.InvoiceRepo.FindByClientID(r.Context(), clientID)
	if err != nil {
		log.Printf("❌ [Dashboard] Falha ao listar faturas de %s: %v", clientID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load invoices"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}
