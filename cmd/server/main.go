// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/omnibot/campaign-studio/internal/db"
	"github.com/omnibot/campaign-studio/internal/handler"
	"github.com/omnibot/campaign-studio/internal/interpreter"
	"github.com/omnibot/campaign-studio/internal/publisher"
	"github.com/omnibot/campaign-studio/internal/queue"
	"github.com/omnibot/campaign-studio/internal/repository"
	"github.com/omnibot/campaign-studio/internal/workflow"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Campaign store: Postgres when configured, in-memory otherwise
	var campaignRepo repository.CampaignRepositoryInterface
	if db.Configured() {
		conn, err := db.Connect()
		if err != nil {
			log.Fatal(err)
		}
		campaignRepo = &repository.CampaignRepository{DB: conn}
		log.Println("✅ Connected to database")
	} else {
		log.Println("⚠️ DB_HOST not set, using in-memory campaign store")
		campaignRepo = repository.NewInMemoryCampaignRepository()
	}

	// Delivery transport: RabbitMQ when configured (cmd/worker consumes),
	// otherwise the in-memory queue with an in-process subscriber
	var q queue.Queue
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpQueue, err := queue.DialAMQP(url)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Println("✅ Connected to RabbitMQ")
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartDeliverySubscriber(memQueue, campaignRepo, nil)
		q = memQueue
	}

	interpreterClient := interpreter.NewClient(os.Getenv("INTERPRETER_BASE_URL"))
	executor := &publisher.Executor{
		Repo:  campaignRepo,
		Queue: q,
	}

	redirectTick := time.Second
	if ms, err := strconv.Atoi(os.Getenv("REDIRECT_TICK_MS")); err == nil && ms > 0 {
		redirectTick = time.Duration(ms) * time.Millisecond
	}

	controller := workflow.NewController(interpreterClient, executor, redirectTick)

	workflowHandler := &handler.WorkflowHandler{Controller: controller}
	campaignHandler := &handler.CampaignHandler{Repo: campaignRepo}

	r := chi.NewRouter()

	// Campaign list projection
	r.Get("/campaigns", campaignHandler.ListCampaignsHandler)

	// Authoring workflow session
	r.Get("/workflow", workflowHandler.GetWorkflowHandler)
	r.Post("/workflow/new", workflowHandler.StartCreateHandler)
	r.Post("/workflow/query", workflowHandler.SubmitQueryHandler)
	r.Post("/workflow/next", workflowHandler.AdvanceHandler)
	r.Post("/workflow/back", workflowHandler.BackHandler)
	r.Put("/workflow/config", workflowHandler.UpdateConfigHandler)
	r.Post("/workflow/confirm/open", workflowHandler.OpenConfirmHandler)
	r.Post("/workflow/confirm/cancel", workflowHandler.CancelConfirmHandler)
	r.Post("/workflow/confirm", workflowHandler.ConfirmPublishHandler)
	r.Post("/workflow/list", workflowHandler.GoToListHandler)
	r.Post("/workflow/dismiss", workflowHandler.DismissNoticeHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
