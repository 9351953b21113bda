package usecase

// ValidationError: entrada malformada/faltando; rejeitada antes de qualquer
// efeito colateral. Message é exatamente o que a API devolve.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ConflictError: horário já ocupado. O ÚNICO caso em que o fluxo aborta cedo
// e devolve erro duro ao chamador: dobrar a agenda de alguém jamais pode
// passar em silêncio. Carrega o LeadID para o operador recuperar o pedido.
type ConflictError struct {
	Message string
	Details string
	LeadID  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsConflictError(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// TechnicalError: qualquer coisa que escape do fluxo. Também carrega o LeadID
// (quando existe) para follow-up manual sem reperguntar ao cliente.
type TechnicalError struct {
	Message string
	LeadID  string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
