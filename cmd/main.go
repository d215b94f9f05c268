package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/config"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/handler"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/ledger"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/repository"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/scheduler"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/service"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	db, err := initDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database:", err)
	}

	salesRepo := repository.NewSalesRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	chain := ledger.NewChain(cfg.Ledger.EffectiveDifficulty())
	logger.WithFields(map[string]interface{}{
		"difficulty": chain.Difficulty(),
	}).Info("Sales chain initialized")

	ledgerSvc := service.NewLedgerService(chain, salesRepo)
	scoringSvc := service.NewScoringService()

	if cfg.Audit.Enabled {
		auditScheduler := scheduler.NewAuditScheduler(chain, auditRepo, cfg.Audit.Cron)
		if err := auditScheduler.Start(); err != nil {
			logger.Fatal("Failed to start audit scheduler:", err)
		}
		defer auditScheduler.Stop()
	}

	router := setupHTTPRouter(ledgerSvc, scoringSvc, auditRepo)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.RequestLogger(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting on port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error:", err)
	}

	logger.Info("Server stopped")
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.SaleRecord{}, &models.ChainAudit{}); err != nil {
		return nil, err
	}

	return db, nil
}

func setupHTTPRouter(ledgerSvc *service.LedgerService, scoringSvc *service.ScoringService, auditRepo *repository.AuditRepository) http.Handler {
	router := http.NewServeMux()

	ledgerHandler := handler.NewLedgerHandler(ledgerSvc)
	scoreHandler := handler.NewScoreHandler(scoringSvc)
	auditHandler := handler.NewAuditHandler(auditRepo)

	router.HandleFunc("/api/blockchain/sale", ledgerHandler.RecordSale)
	router.HandleFunc("/api/blockchain/status", ledgerHandler.GetStatus)
	router.HandleFunc("/api/blockchain/summary", ledgerHandler.GetSummary)
	router.HandleFunc("/api/sales/recent", ledgerHandler.GetRecentSales)
	router.HandleFunc("/api/credit-score", scoreHandler.Calculate)
	router.HandleFunc("/api/credit-score/breakdown", scoreHandler.Breakdown)
	router.HandleFunc("/api/credit-score/report", scoreHandler.Report)
	router.HandleFunc("/api/credit-score/test", scoreHandler.Test)
	router.HandleFunc("/api/audits", auditHandler.GetAudits)
	router.HandleFunc("/health", handler.HandleHealth)

	return router
}
