package usecase

import (
	"regexp"
	"strings"
)

// Mesmo padrão usado pelo formulário do site
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCreateBookingInput roda ANTES de qualquer efeito colateral.
// As mensagens são contrato da API: "Missing required fields" e
// "Invalid email address".
func ValidateCreateBookingInput(input CreateBookingInput) *ValidationError {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"service", input.Service},
		{"message", input.Message},
		{"preferredDate", input.PreferredDate},
		{"preferredTime", input.PreferredTime},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{
			Message: "Missing required fields",
			Fields:  missing,
		}
	}

	if !emailPattern.MatchString(input.Email) {
		return &ValidationError{
			Message: "Invalid email address",
			Fields:  []string{"email"},
		}
	}

	return nil
}
