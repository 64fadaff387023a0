package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/hyesung/dartview/internal/api"
	"github.com/hyesung/dartview/internal/api/handlers"
	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/internal/external/dart"
	"github.com/hyesung/dartview/internal/external/gemini"
	"github.com/hyesung/dartview/internal/store"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `재무제표 조회 API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- DART 재무제표 프록시 제공
- 회사 검색/상세 조회 제공
- AI 재무제표 요약 제공

Endpoints:
  GET  /health                     - Health check
  GET  /api/financial              - DART 재무제표 프록시
  POST /api/explain                - AI 재무제표 요약
  GET  /api/companies/search       - 회사 자동완성 검색
  GET  /api/companies/{corpCode}   - 회사 상세 조회
  GET  /api/statement              - 재무제표 뷰 모델 조회

Example:
  go run ./cmd/dartview serve
  go run ./cmd/dartview serve --port 4500`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DartView API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	if cfg.DART.APIKey == "" {
		log.Warn("DART_API_KEY is not set; /api/financial will reject requests without an apiKey parameter")
	}
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; /api/explain will reject requests")
	}

	// 3. Load the in-memory company directory. A missing dataset is not
	// fatal: search degrades until init-db has been run.
	dir := directory.New(log)
	if err := dir.LoadFile(cfg.Data.CorpCodesPath); err != nil {
		log.WithError(err).WithField("path", cfg.Data.CorpCodesPath).
			Warn("Failed to load company directory")
	} else {
		log.WithField("companies", dir.Len()).Info("Company directory loaded")
	}

	// 4. Open the company store if init-db has built one. The interface
	// stays nil when the file is absent so handlers fall back to the
	// in-memory directory.
	var companyStore handlers.CompanyStore
	if st, err := store.Open(cfg.Data.StorePath); err != nil {
		log.WithError(err).WithField("path", cfg.Data.StorePath).
			Warn("Company store unavailable, falling back to directory search")
	} else {
		defer st.Close()
		companyStore = st
		log.WithField("path", st.Path()).Info("Company store opened")
	}

	// 5. Create external API clients
	dartClient := dart.NewClient(cfg.DART, log)
	geminiClient := gemini.NewClient(cfg.Gemini, log)

	// 6. Create handlers
	financialHandler := handlers.NewFinancialHandler(dartClient, log)
	explainHandler := handlers.NewExplainHandler(geminiClient, log)
	companyHandler := handlers.NewCompanyHandler(dir, companyStore, log)
	statementHandler := handlers.NewStatementHandler(dir, dartClient, log)

	// 7. Create router
	router := api.NewRouter(financialHandler, explainHandler, companyHandler, statementHandler, log)

	// 8. Create server
	server := api.New(cfg, log, router)

	// 9. Optional periodic directory refresh
	var scheduler *cron.Cron
	if cfg.Data.RefreshCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Data.RefreshCron, func() {
			if err := dir.LoadFile(cfg.Data.CorpCodesPath); err != nil {
				log.WithError(err).Warn("Directory refresh failed")
				return
			}
			log.WithField("companies", dir.Len()).Info("Company directory refreshed")
		})
		if err != nil {
			return fmt.Errorf("invalid DIRECTORY_REFRESH_CRON: %w", err)
		}
		scheduler.Start()
		log.WithField("schedule", cfg.Data.RefreshCron).Info("Directory refresh scheduled")
	}

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/financial")
	fmt.Println("  POST /api/explain")
	fmt.Println("  GET  /api/companies/search")
	fmt.Println("  GET  /api/companies/{corpCode}")
	fmt.Println("  GET  /api/statement")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
