package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewClient(storeURL, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(storeURL, "/"),
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrDetect: cria o cliente na loja e devolve o ID. "Já existe" é um
// resultado normal (IsDuplicate), não um erro. Nenhum caminho desta função
// lança erro; o chamador decide o que anotar no Lead.
func (c *Client) CreateOrDetect(ctx context.Context, input RegisterInput) RegisterResult {
	if c.accessToken == "" {
		log.Println("⚠️ Shopify: ACCESS_TOKEN não configurado")
		return RegisterResult{Err: "shopify não configurado"}
	}

	url := fmt.Sprintf("%s/admin/api/2024-01/customers.json", c.baseURL)

	firstName, lastName := splitName(input.Name)

	// 1. Converte DTO -> Request da Admin API
	payload := createCustomerRequest{
		Customer: customerPayload{
			FirstName:        firstName,
			LastName:         lastName,
			Email:            input.Email,
			Phone:            input.Phone,
			AcceptsMarketing: input.AcceptsMarketing,
			Note:             input.Note,
			Tags:             "booking-intake",
			SendEmailInvite:  true,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return RegisterResult{Err: "erro ao marshal customer: " + err.Error()}
	}

	// 2. Cria Request
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return RegisterResult{Err: err.Error()}
	}
	c.setHeaders(req)

	// 3. Envia
	resp, err := c.http.Do(req)
	if err != nil {
		return RegisterResult{Err: "erro request shopify: " + err.Error()}
	}
	defer resp.Body.Close()

	// 4. Duplicado: 422 com "has already been taken" no email
	if resp.StatusCode == http.StatusUnprocessableEntity {
		body, _ := io.ReadAll(resp.Body)
		if isDuplicateBody(body) {
			return RegisterResult{IsDuplicate: true}
		}
		log.Printf("❌ ERRO CRIAR CLIENTE SHOPIFY: %s", string(body))
		return RegisterResult{Err: fmt.Sprintf("shopify rejeitou o cliente (422): %s", string(body))}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ ERRO CRIAR CLIENTE SHOPIFY: %s", string(body))
		return RegisterResult{Err: fmt.Sprintf("erro criar cliente shopify (status %d)", resp.StatusCode)}
	}

	// 5. Decodifica
	var response customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return RegisterResult{Err: "erro decode shopify: " + err.Error()}
	}

	return RegisterResult{
		Success:    true,
		CustomerID: fmt.Sprintf("%d", response.Customer.ID),
		InviteSent: true, // send_email_invite gera a senha e envia o convite
	}
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "StudioBackend/1.0")
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first := parts[0]
	last := ""
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}

func isDuplicateBody(body []byte) bool {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, msgs := range parsed.Errors {
			for _, msg := range msgs {
				if strings.Contains(msg, "has already been taken") {
					return true
				}
			}
		}
	}
	// Fallback para formatos de erro fora do padrão
	return bytes.Contains(body, []byte("has already been taken"))
}
