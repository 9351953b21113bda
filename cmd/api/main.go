package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/studio-backend/internal/infra/database"
	"github.com/xavierca1/studio-backend/internal/infra/http/handlers"
	"github.com/xavierca1/studio-backend/internal/infra/http/middleware"
	"github.com/xavierca1/studio-backend/internal/infra/integration/gcal"
	"github.com/xavierca1/studio-backend/internal/infra/integration/shopify"
	"github.com/xavierca1/studio-backend/internal/infra/mail"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
	"github.com/xavierca1/studio-backend/internal/infra/worker"
	"github.com/xavierca1/studio-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	clientRepo := database.NewClientAccountRepository(db)
	projectRepo := database.NewProjectRepository(db)
	orderRepo := database.NewOrderRepository(db)
	invoiceRepo := database.NewInvoiceRepository(db)

	// 2. Gateways e Adapters
	shopifyClient := shopify.NewClient(os.Getenv("SHOPIFY_STORE_URL"), os.Getenv("SHOPIFY_ADMIN_TOKEN"))
	gcalClient := gcal.NewClient(
		os.Getenv("GCAL_CLIENT_ID"),
		os.Getenv("GCAL_CLIENT_SECRET"),
		os.Getenv("GCAL_REFRESH_TOKEN"),
		os.Getenv("GCAL_CALENDAR_ID"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// 3. Workers (fila de avisos internos + follow-up de leads parados)
	adminSender := mail.NewAdminAlertSender(mailSender, os.Getenv("ADMIN_EMAIL"))
	queueWorker := queue.NewWorker(rabbitMQ.Ch, adminSender)
	go queueWorker.Start(queue.QueueName)

	followupWorker := worker.NewFollowupWorker(db, producer)
	go followupWorker.Start(context.Background())

	// 4. UseCases
	createBookingUC := usecase.NewCreateBookingUseCase(
		leadRepo, shopifyClient, mailSender, gcalClient, producer,
	)

	// 5. Handlers
	bookingHandler := handlers.NewBookingHandler(createBookingUC)
	availabilityHandler := handlers.NewAvailabilityHandler(gcalClient)
	dashboardHandler := handlers.NewDashboardHandler(clientRepo, projectRepo, orderRepo, invoiceRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/api/booking", bookingHandler.Handle)
	r.Post("/api/booking/availability", availabilityHandler.Handle)

	r.Route("/api/clients/{id}", func(r chi.Router) {
		r.Get("/projects", dashboardHandler.ListProjects)
		r.Get("/orders", dashboardHandler.ListOrders)
		r.Get("/invoices", dashboardHandler.ListInvoices)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/leads", leadHandler.List)
		r.Get("/leads/{id}", leadHandler.Get)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Studio backend rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
