package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	BaseURL = "https://www.googleapis.com/calendar/v3"
	AuthURL = "https://oauth2.googleapis.com/token"
)

type Client struct {
	HTTPClient   *http.Client
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(clientID, clientSecret, refreshToken, calendarID string) *Client {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		CalendarID:   calendarID,
	}
}

func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Margem de 30s para não usar token na beira de expirar
	if c.token != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return nil
	}

	log.Println("🔄 [Calendar] Renovando token...")

	form := url.Values{}
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("refresh_token", c.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, "POST", AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro request auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		var errorBody bytes.Buffer
		errorBody.ReadFrom(resp.Body)
		log.Printf("❌ [Calendar] Erro Auth: %s", errorBody.String())
		return fmt.Errorf("erro auth calendar: status %d", resp.StatusCode)
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("erro decode auth: %w", err)
	}

	c.token = data.AccessToken
	exp := data.ExpiresIn
	if exp == 0 {
		exp = 3600 // Default 1h
	}
	c.tokenExpiry = time.Now().Add(time.Duration(exp) * time.Second)

	return nil
}

// IsAvailable consulta o free/busy da agenda para [start, end).
// O resultado reflete o estado da agenda NO MOMENTO da chamada; a criação do
// evento é uma segunda chamada e a janela entre as duas fica em aberto
// (a API não tem create-if-available atômico).
func (c *Client) IsAvailable(ctx context.Context, start, end time.Time) (bool, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return false, err
	}

	payload := freeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []freeBusyItemID{{ID: c.CalendarID}},
	}

	jsonBody, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", BaseURL+"/freeBusy", bytes.NewBuffer(jsonBody))
	if err != nil {
		return false, err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("falha request free/busy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		return false, fmt.Errorf("erro api calendar (%d): %s", resp.StatusCode, errBody.String())
	}

	var result freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("erro decode free/busy: %w", err)
	}

	cal, ok := result.Calendars[c.CalendarID]
	if !ok {
		return false, fmt.Errorf("agenda %s ausente na resposta free/busy", c.CalendarID)
	}

	return len(cal.Busy) == 0, nil
}

// CreateEvent cria o evento com convidado e link de conferência e devolve o
// link para entrar na chamada.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (string, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return "", err
	}

	timeZone := input.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}

	payload := insertEventRequest{
		Summary:     input.Summary,
		Description: input.Description,
		Start:       eventDateTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: timeZone},
		End:         eventDateTime{DateTime: input.End.Format(time.RFC3339), TimeZone: timeZone},
		Attendees: []eventAttendee{
			{Email: input.AttendeeEmail, DisplayName: input.AttendeeName},
		},
		ConferenceData: &conferenceData{
			CreateRequest: conferenceCreateRequest{RequestID: uuid.New().String()},
		},
	}

	jsonBody, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1", BaseURL, url.PathEscape(c.CalendarID))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha request criar evento: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		return "", fmt.Errorf("erro api calendar (%d): %s", resp.StatusCode, errBody.String())
	}

	var result insertEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("erro decode evento: %w", err)
	}

	link := result.HangoutLink
	if link == "" {
		link = result.HTMLLink
	}

	log.Printf("✅ [Calendar] Evento criado para %s (%s - %s)",
		input.AttendeeEmail, input.Start.Format(time.RFC3339), input.End.Format(time.RFC3339))
	return link, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
}
