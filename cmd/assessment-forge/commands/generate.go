package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"assessment-forge/internal/config"
	"assessment-forge/internal/database"
	"assessment-forge/internal/domain"
	"assessment-forge/internal/llmprovider"
	"assessment-forge/internal/orchestrator"
	"assessment-forge/internal/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		topic         string
		course        string
		unit          string
		gradeBand     string
		assessment    string
		studentLevel  string
		timeMinutes   int
		questionCount int
		userID        string
		fromStdin     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one assessment pipeline request and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := domain.TeacherIntent{
				Topic:          topic,
				Course:         course,
				Unit:           unit,
				GradeBand:      gradeBand,
				AssessmentType: domain.AssessmentType(assessment),
				StudentLevel:   domain.StudentLevel(studentLevel),
				TimeMinutes:    timeMinutes,
				QuestionCount:  questionCount,
				UserID:         userID,
			}

			if fromStdin {
				decoder := json.NewDecoder(os.Stdin)
				if err := decoder.Decode(&intent); err != nil {
					return fmt.Errorf("failed to decode intent from stdin: %w", err)
				}
			}

			if intent.UserID == "" {
				intent.UserID = uuid.New().String()
			}

			return runGenerate(intent)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "the lesson topic")
	cmd.Flags().StringVar(&course, "course", "", "the course name")
	cmd.Flags().StringVar(&unit, "unit", "", "the unit name")
	cmd.Flags().StringVar(&gradeBand, "grade", "", "the grade band, e.g. \"7\"")
	cmd.Flags().StringVar(&assessment, "type", string(domain.AssessmentQuiz), "assessment type: bellRinger|exitTicket|quiz|test|worksheet|testReview")
	cmd.Flags().StringVar(&studentLevel, "level", string(domain.LevelStandard), "student level: remedial|standard|honors|ap")
	cmd.Flags().IntVar(&timeMinutes, "time", 20, "class time budget in minutes")
	cmd.Flags().IntVar(&questionCount, "count", 0, "question count (0 lets the architect infer one)")
	cmd.Flags().StringVar(&userID, "user", "", "the requesting teacher's user id (generated if omitted)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read a full TeacherIntent JSON payload from stdin instead of flags")

	return cmd
}

func runGenerate(intent domain.TeacherIntent) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, continuing with environment defaults")
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

	provider := llmprovider.New(cfg)

	orch := orchestrator.New(provider, adapter, nil, orchestrator.Config{
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

	ctx := context.Background()
	runID := uuid.New().String()
	day := time.Now().UTC().Format("2006-01-02")

	result, err := orch.Run(ctx, intent, runID, 1, day)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Assessment)
}
