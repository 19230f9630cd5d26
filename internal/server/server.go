package server

import (
	"context"
	"fmt"
	"log"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"

	"github.com/go-tangra/go-tangra-readiness/internal/config"
	"github.com/go-tangra/go-tangra-readiness/internal/store"
)

// Run starts the collector HTTP server and blocks until the context is
// cancelled.
func Run(ctx context.Context, cfg *config.Config, openApiData []byte) error {
	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var notifier *Notifier
	if cfg.NatsURL != "" {
		notifier, err = NewNotifier(cfg.NatsURL, cfg.NatsSubject)
		if err != nil {
			return err
		}
		defer notifier.Close()
		log.Printf("Republishing stored reports to NATS subject %s", cfg.NatsSubject)
	}

	handler := NewHandler(db, notifier)

	httpSrv := kratoshttp.NewServer(
		kratoshttp.Address(cfg.Listen),
		kratoshttp.Middleware(AuthMiddleware(cfg.ClientSecret, cfg.ApiSecret)),
	)
	RegisterRoutes(httpSrv, handler)

	// Swagger UI (registered via HandlePrefix — bypasses middleware chain).
	if cfg.EnableSwagger && len(openApiData) > 0 {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			httpSrv,
			swaggerUI.WithTitle("Readiness Collector"),
			swaggerUI.WithMemoryData(openApiData, "yaml"),
		)
		log.Printf("Swagger UI available at http://%s/docs/", cfg.Listen)
	}

	// Optional retention purge goroutine.
	if cfg.RetentionDays > 0 {
		go runPurgeLoop(ctx, db, cfg.RetentionDays, cfg.PurgeInterval)
		log.Printf("Retention: %d days, purge interval: %s", cfg.RetentionDays, cfg.PurgeInterval)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		_ = httpSrv.Stop(context.Background())
	}()

	log.Printf("Readiness Collector listening on %s (db: %s)", cfg.Listen, cfg.DatabasePath)

	return httpSrv.Start(ctx)
}

func runPurgeLoop(ctx context.Context, db *store.Store, retentionDays int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			olderThan := time.Duration(retentionDays) * 24 * time.Hour
			n, err := db.Purge(ctx, olderThan)
			if err != nil {
				log.Printf("Purge error: %v", err)
			} else if n > 0 {
				log.Printf("Purged %d reports older than %d days", n, retentionDays)
			}
		}
	}
}
