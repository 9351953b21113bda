package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/xavierca1/studio-backend/internal/infra/integration/gcal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if os.Getenv("GCAL_REFRESH_TOKEN") == "" {
		log.Fatal("❌ GCAL_CLIENT_ID, GCAL_CLIENT_SECRET e GCAL_REFRESH_TOKEN devem estar configurados no .env")
	}

	client := gcal.NewClient(
		os.Getenv("GCAL_CLIENT_ID"),
		os.Getenv("GCAL_CLIENT_SECRET"),
		os.Getenv("GCAL_REFRESH_TOKEN"),
		os.Getenv("GCAL_CALENDAR_ID"),
	)

	ctx := context.Background()

	// Amanhã às 14h, janela de 1 hora
	tomorrow := time.Now().Add(24 * time.Hour)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 14, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)

	fmt.Println("🔄 Consultando disponibilidade no Google Calendar...")
	fmt.Printf("   Início: %s\n", start.Format(time.RFC3339))
	fmt.Printf("   Fim:    %s\n\n", end.Format(time.RFC3339))

	available, err := client.IsAvailable(ctx, start, end)
	if err != nil {
		log.Fatalf("Erro ao consultar disponibilidade: %v", err)
	}

	if !available {
		fmt.Println("⚠️  Horário ocupado — escolha outra janela para o teste")
		return
	}

	fmt.Println("✅ Horário livre! Criando evento de teste...")

	link, err := client.CreateEvent(ctx, gcal.EventInput{
		Summary:       "Reunião de descoberta — Joao Teste da Silva",
		Description:   "Evento de teste da integração com o Google Calendar.\nPode apagar.",
		Start:         start,
		End:           end,
		AttendeeEmail: "joao.teste@email.com",
		AttendeeName:  "Joao Teste da Silva",
	})
	if err != nil {
		log.Fatalf("Erro ao criar evento: %v", err)
	}

	fmt.Printf("Evento criado com sucesso! \n")
	fmt.Printf(" Link: %s\n", link)
}
