package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"allograft/internal/access"
	"allograft/internal/audit"
	matchingmetrics "allograft/internal/matching/metrics"
	matchingservice "allograft/internal/matching/service"
	matchingstore "allograft/internal/matching/store"
	"allograft/internal/platform/config"
	"allograft/internal/platform/health"
	"allograft/internal/platform/httpserver"
	"allograft/internal/platform/logger"
	"allograft/internal/platform/ratelimit"
	"allograft/internal/platform/storetx"
	"allograft/internal/platform/tracer"
	registrymetrics "allograft/internal/registry/metrics"
	registryservice "allograft/internal/registry/service"
	registrystore "allograft/internal/registry/store"
	surgerymetrics "allograft/internal/surgery/metrics"
	surgeryservice "allograft/internal/surgery/service"
	surgerystore "allograft/internal/surgery/store"
	"allograft/internal/token"
	httptransport "allograft/internal/transport/http"
	"allograft/internal/waitlist"
	id "allograft/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	configPath := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	log := logger.New()

	log.Info("initializing allograft",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	// Audit sink: durable when a db path is configured, in-memory otherwise.
	var (
		eventStore audit.Store
		sqliteSink *audit.SQLiteStore
	)
	if cfg.AuditDBPath != "" {
		s, err := audit.NewSQLiteStore(cfg.AuditDBPath)
		if err != nil {
			log.Error("failed to open audit store", "error", err, "path", cfg.AuditDBPath)
			os.Exit(1)
		}
		sqliteSink = s
		eventStore = s
	} else {
		log.Warn("no audit db path configured, events are held in memory only")
		eventStore = audit.NewInMemoryStore()
	}
	publisher := audit.NewPublisher(eventStore, audit.WithPublisherLogger(log))
	recorder := audit.NewRecorder(log, publisher)

	trc := tracer.New()
	tx := storetx.NewInMemory()

	grants := access.NewInMemoryGrantStore()
	authz := access.NewService(grants,
		access.WithLogger(log),
		access.WithRecorder(recorder),
	)

	tokens := token.NewService(cfg.JWTSigningKey, "allograft", cfg.TokenTTL)

	patientStore := registrystore.NewInMemoryPatientStore()
	donorStore := registrystore.NewInMemoryDonorStore()
	matchStore := matchingstore.NewInMemoryMatchStore()
	organStore := surgerystore.NewInMemoryOrganStore()

	registrySvc := registryservice.New(
		patientStore,
		donorStore,
		waitlist.NewLog[id.PatientID](),
		waitlist.NewLog[id.DonorID](),
		authz,
		tx,
		registryservice.WithLogger(log),
		registryservice.WithRecorder(recorder),
		registryservice.WithMetrics(registrymetrics.New()),
		registryservice.WithTracer(trc),
	)

	matchingSvc := matchingservice.New(
		matchStore,
		registrySvc,
		registrySvc,
		registrySvc,
		authz,
		tx,
		matchingservice.WithLogger(log),
		matchingservice.WithRecorder(recorder),
		matchingservice.WithMetrics(matchingmetrics.New()),
		matchingservice.WithTracer(trc),
	)

	surgerySvc := surgeryservice.New(
		organStore,
		matchingSvc,
		waitlist.NewLog[id.PatientID](),
		authz,
		tx,
		surgeryservice.WithLogger(log),
		surgeryservice.WithRecorder(recorder),
		surgeryservice.WithMetrics(surgerymetrics.New()),
		surgeryservice.WithTracer(trc),
	)

	registrymetrics.RegisterStoreGauges(
		func() int { n, _ := patientStore.Count(context.Background()); return n },
		func() int { n, _ := donorStore.Count(context.Background()); return n },
	)
	matchingmetrics.RegisterStoreGauges(func() int { n, _ := matchStore.Count(context.Background()); return n })
	surgerymetrics.RegisterStoreGauges(func() int { n, _ := organStore.Count(context.Background()); return n })

	healthHandler := health.New(cfg.Environment)
	if sqliteSink != nil {
		healthHandler.RegisterCheck("audit_store", sqliteSink.Ping)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Registry:       registrySvc,
		Matching:       matchingSvc,
		Surgery:        surgerySvc,
		Access:         authz,
		TokenValidator: tokens,
		TokenIssuer:    tokens,
		AdminTokenHash: cfg.AdminTokenHash,
		TransplantList: surgerySvc,
		Limiter:        ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute),
		Health:         healthHandler,
		Logger:         log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	if err := httpserver.Shutdown(srv, 10*time.Second); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	publisher.Close()
	if sqliteSink != nil {
		_ = sqliteSink.Close()
	}

	log.Info("server stopped")
}
