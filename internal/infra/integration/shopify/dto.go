package shopify

// RegisterInput: o que o usecase manda para o registrador de clientes
type RegisterInput struct {
	Name             string
	Email            string
	Phone            string
	AcceptsMarketing bool
	Note             string
}

// RegisterResult: duplicado NÃO é erro, é um resultado esperado, marcado em
// IsDuplicate. Erros de rede/provider voltam em Err, nunca como erro lançado,
// para o orquestrador sempre poder seguir em frente.
type RegisterResult struct {
	Success     bool
	CustomerID  string
	InviteSent  bool
	IsDuplicate bool
	Err         string
}

// --- PAYLOAD INTERNO: o que mandamos para a Admin API ---
type createCustomerRequest struct {
	Customer customerPayload `json:"customer"`
}

type customerPayload struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"accepts_marketing"`
	Note             string `json:"note,omitempty"`
	Tags             string `json:"tags,omitempty"`
	SendEmailInvite  bool   `json:"send_email_invite"`
}

// --- RESPONSE: o que a Admin API devolve ---
type customerResponse struct {
	Customer struct {
		ID int64 `json:"id"`
	} `json:"customer"`
}

// 422 com "has already been taken" no email = cliente duplicado
type errorResponse struct {
	Errors map[string][]string `json:"errors"`
}
