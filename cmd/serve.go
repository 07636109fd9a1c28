package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/ROHANDEV-web/school-assistant/internal/auth"
	"github.com/ROHANDEV-web/school-assistant/internal/config"
	"github.com/ROHANDEV-web/school-assistant/internal/credits"
	"github.com/ROHANDEV-web/school-assistant/internal/db"
	"github.com/ROHANDEV-web/school-assistant/internal/llm"
	"github.com/ROHANDEV-web/school-assistant/internal/notes"
	"github.com/ROHANDEV-web/school-assistant/internal/quiz"
	"github.com/ROHANDEV-web/school-assistant/internal/server"
	"github.com/ROHANDEV-web/school-assistant/internal/stats"
	"github.com/ROHANDEV-web/school-assistant/internal/tools"
	"github.com/ROHANDEV-web/school-assistant/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the school-assistant API server",
	Long:  `Starts the HTTP API server: tutoring chat, notes/quiz/vision/pdf generation, credits, XP and leaderboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		provider, err := llm.NewProvider(string(cfg.Server.Provider), cfg.Server.Model)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		dbPath := filepath.Join(cfg.Server.DataDir, "schoolai.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			DataDir:  cfg.Server.DataDir,
			AllowAll: cfg.Server.AllowAll,
		}, database)

		registerAllRoutes(srv, database, provider, cfg)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "schoolai server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", provider.Name(), cfg.Server.Model)

		return srv.Start()
	},
}

// registerAllRoutes wires up every feature route.
func registerAllRoutes(srv *server.Server, database *db.DB, provider llm.Provider, cfg *config.Config) {
	r := srv.Router()

	authStore := auth.NewStore(database)
	creditStore := credits.NewStore(database, cfg.Server.DailyLimit)
	statStore := stats.NewStore(database)
	quizStore := quiz.NewStore(database)
	noteStore := notes.NewStore(database)

	visionModel := cfg.Server.VisionModel
	if visionModel == "" {
		visionModel = config.DefaultVisionModel(cfg.Server.Provider)
	}

	tutorSvc := tutor.NewService(provider, cfg.Server.Model)
	toolSvc := tools.NewService(provider, cfg.Server.Model, visionModel)

	// Public account routes.
	auth.RegisterRoutes(r, authStore)

	// Everything else requires a login session.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireUser(authStore))

		auth.RegisterUserRoutes(pr, authStore, creditStore)
		credits.RegisterRoutes(pr, creditStore)
		tutor.RegisterRoutes(pr, tutorSvc, creditStore, statStore)
		tools.RegisterRoutes(pr, toolSvc, creditStore, statStore)
		quiz.RegisterRoutes(pr, quizStore, authStore)
		notes.RegisterRoutes(pr, noteStore)
		stats.RegisterRoutes(pr, statStore)
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
