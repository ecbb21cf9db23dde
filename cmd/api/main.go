package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glamflow/salon-scheduler/internal/audit"
	"github.com/glamflow/salon-scheduler/internal/config"
	dbpkg "github.com/glamflow/salon-scheduler/internal/db"
	"github.com/glamflow/salon-scheduler/internal/hold"
	"github.com/glamflow/salon-scheduler/internal/infra/repository"
	"github.com/glamflow/salon-scheduler/internal/jobs"
	"github.com/glamflow/salon-scheduler/internal/middleware"
	"github.com/glamflow/salon-scheduler/internal/notify"
	"github.com/glamflow/salon-scheduler/internal/payment"
	"github.com/glamflow/salon-scheduler/internal/routes"
	"github.com/glamflow/salon-scheduler/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := repository.NewBookingGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	notifier := notify.NewDispatcher(notify.NewMailer(cfg))

	holds := hold.New(cfg.RedisAddr, time.Duration(cfg.PaymentWindowMin)*time.Minute)
	if err := holds.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable at %s: %v", cfg.RedisAddr, err)
	}

	gateway, err := payment.NewMercadoPagoGateway(cfg.MPAccessToken)
	if err != nil {
		log.Fatalf("failed to init payment gateway: %v", err)
	}

	avatars := storage.NewAvatarStore(cfg)

	// ======================================================
	// BACKGROUND JOBS
	// ======================================================
	runner := jobs.NewRunner(
		repo,
		notifier,
		holds,
		time.Duration(cfg.PaymentWindowMin)*time.Minute,
		cfg.Timezone,
	)
	runner.Start()
	defer runner.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Repo:     repo,
		Gateway:  gateway,
		Holds:    holds,
		Notifier: notifier,
		Audit:    auditDispatcher,
		Avatars:  avatars,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
