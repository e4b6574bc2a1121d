package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/riskbases/riskbases/dao/query"
	"github.com/riskbases/riskbases/internal"
	"github.com/riskbases/riskbases/internal/handler"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/config"
)

// @title RiskBases API
// @version 0.1.0
// @description API server for RiskBases, a multi-tenant project risk management platform.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Log in via /v1/auth/login and pass 'Bearer ${TOKEN}' to reach protected routes
func main() {
	// set global timezone
	time.Local = time.UTC

	backendConfig := config.GetConfig()
	// variable changes in local development
	if gin.Mode() == gin.DebugMode {
		if err := godotenv.Load(".debug.env"); err != nil {
			klog.Warningf("no .debug.env loaded: %v", err)
		}
		if be := os.Getenv("RISKBASES_BE_PORT"); be != "" {
			backendConfig.ServerAddr = ":" + be
		}
	}

	db := query.GetDB()
	if err := query.Migrate(db); err != nil {
		klog.Fatalf("migration failed: %v", err)
	}

	backend := internal.Register(&handler.RegisterConfig{
		DB:    db,
		Alert: alert.GetAlertMgr(),
	})

	srv := &http.Server{
		Addr:              backendConfig.ServerAddr,
		Handler:           backend.R,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		klog.Infof("starting server on %s", backendConfig.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Fatalf("problem running server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	klog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("server shutdown: %v", err)
	}
}
