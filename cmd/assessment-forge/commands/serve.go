package commands

import (
	"fmt"
	"log"

	"assessment-forge/internal/cache"
	"assessment-forge/internal/config"
	"assessment-forge/internal/database"
	"assessment-forge/internal/handlers"
	"assessment-forge/internal/llmprovider"
	"assessment-forge/internal/orchestrator"
	"assessment-forge/internal/storage"
	"assessment-forge/internal/sweeper"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the assessment-forge HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, continuing with environment defaults")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	adapter := storage.NewPostgresAdapter(db)
	if _, err := db.Exec(storage.Schema); err != nil {
		return fmt.Errorf("failed to apply storage schema: %w", err)
	}

	compCache, err := cache.New(cfg.RedisURL, 0)
	if err != nil {
		log.Printf("compensation cache disabled, continuing without it: %v", err)
		compCache = nil
	} else {
		defer compCache.Close()
	}

	sweep := sweeper.New(db.DB)
	if err := sweep.Start(); err != nil {
		log.Printf("sweeper failed to start: %v", err)
	} else {
		defer sweep.Stop()
	}

	provider := llmprovider.New(cfg)
	assessments := storage.NewAssessmentRepo(adapter)

	orch := orchestrator.New(provider, adapter, compCache, orchestrator.Config{
		DailyFreeLimit:                   cfg.DailyFreeLimit,
		PipelineDeadline:                 cfg.PipelineDeadline,
		LLMDeadline:                      cfg.LLMDeadline,
		WriterChunkSizeMax:               cfg.WriterChunkSizeMax,
		GuardrailMaxInjected:             cfg.GuardrailMaxInjected,
		GuardrailExpiryWeight:            cfg.GuardrailExpiryWeight,
		GatekeeperRedundancyRatio:        cfg.GatekeeperRedundancyRatio,
		GatekeeperConsecutiveRepeatLimit: cfg.GatekeeperConsecutiveRepeatLimit,
		MaxRestarts:                      2,
	})

	h := handlers.NewHandler(orch, assessments)

	app := fiber.New()
	app.Get("/health", h.Health)
	app.Get("/metrics", h.Metrics)
	app.Post("/assessments/generate", h.GenerateAssessment)
	app.Get("/assessments/history", h.GetHistory)
	app.Get("/assessments/:id", h.GetAssessment)

	fmt.Printf("assessment-forge running on port %s\n", cfg.Port)
	return app.Listen("0.0.0.0:" + cfg.Port)
}
