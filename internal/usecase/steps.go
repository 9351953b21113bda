package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/studio-backend/internal/entity"
)

// Runner sequencial de passos best-effort. Cada passo devolve um patch
// opcional para o Lead; o patch é aplicado num único Update idempotente.
// Falha de passo é logada e o fluxo SEGUE: perder o lead é pior que perder
// qualquer integração. A exceção é o *ConflictError (horário ocupado), que
// interrompe na hora.
type Step struct {
	Name string
	Fn   func(ctx context.Context) (*entity.LeadPatch, error)
}

type StepRunner struct {
	leadRepo entity.LeadRepositoryInterface
	leadID   string
	steps    []Step
}

func NewStepRunner(repo entity.LeadRepositoryInterface, leadID string) *StepRunner {
	return &StepRunner{
		leadRepo: repo,
		leadID:   leadID,
		steps:    []Step{},
	}
}

func (r *StepRunner) Add(name string, fn func(ctx context.Context) (*entity.LeadPatch, error)) {
	r.steps = append(r.steps, Step{name, fn})
}

func (r *StepRunner) Run(ctx context.Context) error {
	for _, step := range r.steps {
		patch, err := step.Fn(ctx)

		// O patch é aplicado mesmo quando o passo falhou: a anotação da
		// falha faz parte do registro do lead.
		if patch != nil {
			r.apply(ctx, step.Name, *patch)
		}

		if err != nil {
			if conflict, ok := err.(*ConflictError); ok {
				return conflict
			}
			log.Printf("⚠️ [Booking] Passo '%s' falhou (seguindo em frente): %v", step.Name, err)
		}
	}

	return nil
}

func (r *StepRunner) apply(ctx context.Context, stepName string, patch entity.LeadPatch) {
	if r.leadID == "" || patch.Empty() {
		return
	}
	if err := r.leadRepo.Update(ctx, r.leadID, patch); err != nil {
		log.Printf("⚠️ [Booking] Falha ao anotar lead %s após '%s': %v", r.leadID, stepName, err)
	}
}
