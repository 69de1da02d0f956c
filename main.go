package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/analysis"
	"github.com/andrewpaige1/coursemap-api/config"
	"github.com/andrewpaige1/coursemap-api/handlers"
	"github.com/andrewpaige1/coursemap-api/metrics"
	"github.com/andrewpaige1/coursemap-api/storage"
	"github.com/andrewpaige1/coursemap-api/wizard"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.Env.IsDevelopment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store := storage.New(storage.NewGormSlot(db), logger.Named("storage"), storage.WithMetrics(m))

	var analyzer analysis.Analyzer = analysis.StubAnalyzer{}
	if cfg.AnalysisURL != "" {
		analyzer = analysis.NewClient(cfg.AnalysisURL, cfg.AnalysisTimeout, logger.Named("analysis"))
	}

	h := &handlers.Handler{
		Storage:      store,
		Orchestrator: analysis.NewOrchestrator(analyzer, store, logger.Named("orchestrator"), analysis.WithOrchestratorMetrics(m)),
		Analyzer:     analysis.StubAnalyzer{},
		Secret:       []byte(cfg.JWTSecret),
		Env:          cfg.Env,
		Logger:       logger,
		Now:          time.Now,
	}
	sessions := wizard.NewSessions(wizard.DefaultCatalog(), logger.Named("wizard"),
		wizard.WithSessionTTL(cfg.SessionTTL),
		wizard.WithMaxSessions(cfg.MaxSessions),
	)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handlers.NewRouter(h, sessions, reg))

	serverAddr := "0.0.0.0:" + cfg.Port
	logger.Info("Starting server",
		zap.String("addr", serverAddr),
		zap.Bool("development", cfg.Env.IsDevelopment),
		zap.Bool("remoteAnalysis", cfg.AnalysisURL != ""),
	)

	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
