package tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

// ============ TESTES DO QUEUE PRODUCER ============

// TestLeadBookedPayloadMarshalling - o payload serializa e volta inteiro
func TestLeadBookedPayloadMarshalling(t *testing.T) {
	payload := queue.LeadBookedPayload{
		LeadID:            "lead-123",
		Name:              "Ana Lee",
		Email:             "ana@company.io",
		Phone:             "+55 61 99999-0000",
		Company:           "Acme Corp",
		Service:           "web-design",
		Message:           "Precisamos de um site novo.",
		PreferredDate:     "2025-06-01",
		PreferredTime:     "2025-06-01T16:00:00Z",
		EmailSent:         true,
		CalendarCreated:   true,
		CalendarEventLink: "https://meet.google.com/abc",
		Origin:            "BOOKING_API",
	}

	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NotEmpty(t, body)

	var received queue.LeadBookedPayload
	err = json.Unmarshal(body, &received)
	assert.NoError(t, err)

	assert.Equal(t, payload, received)
}

// TestLeadBookedPayloadFieldNames - as chaves do JSON são contrato com o worker
func TestLeadBookedPayloadFieldNames(t *testing.T) {
	payload := queue.LeadBookedPayload{
		LeadID:  "lead-123",
		Name:    "Ana Lee",
		Email:   "ana@company.io",
		Service: "web-design",
		Message: "Oi",
		Origin:  "BOOKING_API",
	}

	body, _ := json.Marshal(payload)

	var data map[string]interface{}
	json.Unmarshal(body, &data)

	requiredFields := []string{
		"lead_id", "name", "email", "service", "message",
		"email_sent", "calendar_created", "origin",
	}

	for _, field := range requiredFields {
		assert.Contains(t, data, field, "field %s is missing", field)
	}

	// Opcionais vazios somem do JSON
	assert.NotContains(t, data, "phone")
	assert.NotContains(t, data, "company")
	assert.NotContains(t, data, "calendar_event_link")
}

// TestLeadBookedPayloadOriginTracking - origem distingue fluxo normal de follow-up
func TestLeadBookedPayloadOriginTracking(t *testing.T) {
	origins := []string{"BOOKING_API", "FOLLOWUP_WORKER"}

	for _, origin := range origins {
		payload := queue.LeadBookedPayload{
			LeadID: "lead-123",
			Name:   "Ana Lee",
			Email:  "ana@company.io",
			Origin: origin,
		}

		body, _ := json.Marshal(payload)

		var received queue.LeadBookedPayload
		json.Unmarshal(body, &received)
		assert.Equal(t, origin, received.Origin)
	}
}
