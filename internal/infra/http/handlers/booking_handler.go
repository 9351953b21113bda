package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/studio-backend/internal/infra/http/middleware"
	"github.com/xavierca1/studio-backend/internal/usecase"
)

type BookingHandler struct {
	CreateBookingUC *usecase.CreateBookingUseCase
	rateLimiter     *RateLimiter
}

func NewBookingHandler(uc *usecase.CreateBookingUseCase) *BookingHandler {
	return &BookingHandler{
		CreateBookingUC: uc,
		rateLimiter:     NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type bookingErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	LeadID  string `json:"leadId,omitempty"`
}

func (h *BookingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, bookingErrorResponse{
			Error: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, bookingErrorResponse{
			Error: "Invalid JSON",
		})
		return
	}

	output, err := h.CreateBookingUC.Execute(r.Context(), input)
	if err != nil {
		switch e := err.(type) {
		case *usecase.ValidationError:
			middleware.RecordBooking("rejected")
			writeJSON(w, http.StatusBadRequest, bookingErrorResponse{
				Error: e.Message,
			})

		case *usecase.ConflictError:
			middleware.RecordBooking("conflict")
			writeJSON(w, http.StatusConflict, bookingErrorResponse{
				Error:   e.Message,
				Details: e.Details,
				LeadID:  e.LeadID,
			})

		default:
			log.Printf("❌ [Booking] Erro inesperado: %v", err)
			middleware.RecordBooking("error")
			resp := bookingErrorResponse{
				Error:   "Failed to process booking request",
				Details: err.Error(),
			}
			if te, ok := err.(*usecase.TechnicalError); ok {
				resp.LeadID = te.LeadID
			}
			writeJSON(w, http.StatusInternalServerError, resp)
		}
		return
	}

	middleware.RecordBooking("accepted")
	if output.EmailSent {
		middleware.RecordEmailSent()
	}
	writeJSON(w, http.StatusOK, output)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
