package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientstore "credo-consent/internal/client/store"
	consenthandler "credo-consent/internal/consent/handler"
	consentservice "credo-consent/internal/consent/service"
	grantservice "credo-consent/internal/grant/service"
	grantstore "credo-consent/internal/grant/store"
	"credo-consent/internal/interaction/models"
	interactionstore "credo-consent/internal/interaction/store"
	jwttoken "credo-consent/internal/jwt_token"
	"credo-consent/internal/platform/config"
	"credo-consent/internal/platform/kafka/producer"
	"credo-consent/internal/platform/metrics"
	"credo-consent/internal/platform/postgres"
	"credo-consent/internal/platform/redis"
	"credo-consent/internal/provider"
	"credo-consent/internal/redirect"
	"credo-consent/pkg/platform/audit"
	"credo-consent/pkg/platform/audit/outbox"
	"credo-consent/pkg/platform/audit/publishers/compliance"
	auditmemory "credo-consent/pkg/platform/audit/store/memory"
	auditpostgres "credo-consent/pkg/platform/audit/store/postgres"
	"credo-consent/pkg/platform/circuit"
	authmw "credo-consent/pkg/platform/middleware/auth"
	"credo-consent/pkg/platform/middleware/metadata"
	request "credo-consent/pkg/platform/middleware/request"
	"credo-consent/pkg/platform/middleware/requesttime"
)

// clientRegistry is the client store surface used by main.
type clientRegistry interface {
	provider.ClientStore
	clientstore.Upserter
}

// app holds the constructed dependency graph.
type app struct {
	cfg     config.Server
	log     *slog.Logger
	storage string

	db       *sql.DB
	redis    *redis.Client
	producer *producer.Producer
	registry *prometheus.Registry

	clients  clientRegistry
	engine   *provider.Provider
	sessions *jwttoken.JWTService
	consent  *consentservice.Service
	auditor  *compliance.Publisher
	relay    *outbox.Relay
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, storage: "memory", registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := a.connect(ctx); err != nil {
		a.close()
		return nil, err
	}

	var (
		interactions provider.InteractionStore = interactionstore.NewInMemory()
		grants       provider.GrantStore       = grantstore.NewInMemory()
		auditStore   audit.Store               = auditmemory.NewInMemoryStore()
	)
	a.clients = clientstore.NewInMemory()
	if a.redis != nil {
		interactions = interactionstore.NewRedis(a.redis.Client)
	}
	if a.db != nil {
		a.storage = "postgres"
		grants = grantstore.NewPostgres(a.db)
		a.clients = clientstore.NewPostgres(a.db)
		outboxStore := auditpostgres.New(a.db)
		auditStore = outboxStore
		if a.producer != nil {
			a.relay = outbox.New(outboxStore, a.producer, cfg.Kafka.AuditTopic, log,
				outbox.WithInterval(cfg.Kafka.OutboxPollInterval),
				outbox.WithBreaker(circuit.New("audit-relay")),
			)
		}
	}

	m := metrics.New(a.registry)
	a.auditor = compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(a.registry)),
	)

	handle := provider.NewHandle(func() (provider.Engine, error) {
		a.engine = provider.New(interactions, grants, a.clients,
			provider.WithGrantTTL(cfg.Interaction.GrantTTL),
			provider.WithInteractionTTL(cfg.Interaction.InteractionTTL),
			provider.WithLogger(log),
		)
		return a.engine, nil
	})
	engine, err := handle.Engine()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("build provider: %w", err)
	}
	reconciler := grantservice.New(engine,
		grantservice.WithLogger(log),
		grantservice.WithMetrics(m),
		grantservice.WithAuditPublisher(a.auditor),
	)
	a.consent = consentservice.New(handle, reconciler,
		consentservice.WithLogger(log),
		consentservice.WithMetrics(m),
		consentservice.WithAuditPublisher(a.auditor),
	)
	a.sessions = jwttoken.NewJWTService(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.Audience)
	return a, nil
}

// connect opens the optional backing services. Each one is skipped when its
// URL or brokers are not configured.
func (a *app) connect(ctx context.Context) error {
	db, err := postgres.Open(ctx, postgres.Config{
		URL:             a.cfg.Database.URL,
		MaxOpenConns:    a.cfg.Database.MaxOpenConns,
		MaxIdleConns:    a.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: a.cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	a.db = db
	if db != nil {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if a.redis, err = redis.New(ctx, a.cfg.Redis); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	a.producer, err = producer.New(producer.Config{
		Brokers:  a.cfg.Kafka.Brokers,
		ClientID: a.cfg.Kafka.ClientID,
	}, a.log)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	if a.producer != nil {
		if err := a.producer.EnsureTopic(ctx, a.cfg.Kafka.AuditTopic, 3, 1); err != nil {
			return fmt.Errorf("ensure audit topic: %w", err)
		}
	}
	return nil
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(authmw.ResolveSession(a.sessions.SessionValidator(), a.cfg.Session.CookieName, a.log))

	r.Get("/health", healthHandler(a.healthChecks()))
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	consenthandler.New(a.consent, redirect.New(a.corrector()), a.log).Register(r)
	return r
}

func (a *app) corrector() redirect.OriginCorrector {
	var chain redirect.Chain
	if a.cfg.PublicURL != "" {
		// Validated at startup.
		public, _ := redirect.NewPublicOrigin(a.cfg.PublicURL)
		chain = append(chain, public)
	}
	if a.cfg.TrustForwardedHeaders {
		chain = append(chain, redirect.ForwardedHeaders{})
	}
	if len(chain) == 0 {
		return redirect.Noop{}
	}
	return chain
}

func (a *app) healthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	if a.producer != nil {
		checks["kafka"] = a.producer.Health
	}
	return checks
}

// seedDemo registers the demo client and opens a consent interaction for it
// so the flow can be exercised locally without an authorization server.
func (a *app) seedDemo(ctx context.Context) error {
	client, err := clientstore.SeedDemoClient(ctx, a.clients, time.Now())
	if err != nil {
		return err
	}
	interaction, err := a.engine.StartInteraction(ctx,
		models.Prompt{
			Name:    models.PromptConsent,
			Reasons: []string{"op_scopes_missing"},
			Details: models.PromptDetails{MissingOIDCScope: []string{"openid", "profile", "email"}},
		},
		map[string]string{"client_id": client.ID.String(), "redirect_uri": client.RedirectURIs[0]},
		nil,
	)
	if err != nil {
		return err
	}
	const demoAccount = "demo-account"
	attrs := []any{
		"client_id", client.ID.String(),
		"interaction_uid", interaction.UID.String(),
		"details_path", "/interaction/" + interaction.UID.String(),
		"account_id", demoAccount,
	}
	// Only hand out a ready-made session when running on the development key.
	if a.cfg.UsesDefaultSigningKey() {
		token, err := a.sessions.GenerateSessionToken(demoAccount, a.cfg.Interaction.InteractionTTL)
		if err != nil {
			return err
		}
		attrs = append(attrs, "session_cookie", a.cfg.Session.CookieName, "session_token", token)
	}
	a.log.InfoContext(ctx, "demo interaction ready", attrs...)
	return nil
}

func (a *app) close() {
	var errs []error
	if a.auditor != nil {
		errs = append(errs, a.auditor.Close())
	}
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Error("failed to release resources", "error", err)
	}
}
