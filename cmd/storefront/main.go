package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/cart"
	"github.com/jcmexdev/workshop-storefront/internal/checkout"
	"github.com/jcmexdev/workshop-storefront/internal/config"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog/sqlite"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/cache"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/workshop-storefront/internal/session"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/infra/adapters/service"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/infra/httpx"
)

const sweepInterval = 5 * time.Minute

func main() {
	telemetry.InitLogger()
	if err := run(); err != nil {
		slog.Error("storefront gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.Tracing.Enabled {
		fn, err := telemetry.SetupTracer(ctx, cfg.Tracing.ServiceName)
		if err != nil {
			slog.Warn("tracing disabled", "error", err)
		} else {
			shutdownTracer = fn
		}
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	store, closeCache := openCache(ctx, cfg.Redis.Addr)
	defer closeCache()

	var (
		journal       mutationlog.Repository
		journalReader mutationlog.Reader
	)
	if cfg.Journal.Path != "" {
		repo, err := sqlite.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open mutation journal %s: %w", cfg.Journal.Path, err)
		}
		defer repo.Close()
		journal, journalReader = repo, repo
	}

	client := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))

	var (
		carts    ports.CartService    = service.NewRESTCartService(client)
		orders   ports.OrderService   = service.NewRESTOrderService(client)
		products ports.ProductService = service.NewRESTProductService(client)
	)
	if cfg.API.Fake {
		slog.Warn("serving the boutique from memory")
		fake := service.NewFakeBoutique(service.DemoProducts())
		carts, orders, products = fake, fake, fake
	}

	auth := service.NewRESTAuthService(client)
	content := service.NewRESTContentService(client)
	runner := coordinator.NewRunner(journal)

	cartRegistry := cart.NewRegistry(cart.Deps{
		Service:  carts,
		Runner:   runner,
		Notifier: httpx.RequestNotifier,
		Tokens:   session.ContextTokens{},
	})
	checkoutRegistry := checkout.NewRegistry(checkout.Deps{
		Orders:   orders,
		Notifier: httpx.RequestNotifier,
		Tokens:   session.ContextTokens{},
	}, func(sid string) checkout.Cart { return cartRegistry.Get(sid) })

	sessions := session.NewManager(session.Options{
		CookieName: cfg.Session.CookieName,
		Secret:     cfg.Session.Secret,
		TokenTTL:   cfg.Session.TokenTTL,
		Secure:     cfg.Session.Secure,
	}, store, auth)
	sessions.OnInvalidate(cartRegistry.Drop)
	sessions.OnInvalidate(checkoutRegistry.Drop)

	settings := session.NewSettings(content, store, cfg.Redis.SettingsTTL)
	settings.Warm(ctx)

	handler := httpx.NewHandler(httpx.Deps{
		Sessions:  sessions,
		Settings:  settings,
		Carts:     cartRegistry,
		Checkouts: checkoutRegistry,
		Auth:      auth,
		Products:  products,
		Workshops: service.NewRESTWorkshopService(client),
		Profile:   service.NewRESTProfileService(client),
		Content:   content,
		Health:    store,
		Journal:   journalReader,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("storefront gateway listening", "addr", cfg.Server.Addr, "api", client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				carts := cartRegistry.Sweep(cfg.Session.IdleTimeout)
				checkouts := checkoutRegistry.Sweep(cfg.Session.IdleTimeout)
				if len(carts)+len(checkouts) > 0 {
					slog.Debug("swept idle sessions", "carts", len(carts), "checkouts", len(checkouts))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		slog.Info("shutting down storefront gateway")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

type storeCache interface {
	cache.Cache
	cache.Pinger
}

// openCache connects to Redis, or falls back to an in-process cache when
// no address is set or Redis is unreachable.
func openCache(ctx context.Context, addr string) (storeCache, func()) {
	const serviceName = "storefront"
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryCache(serviceName), func() {}
	}

	rc := cache.NewRedisCache(addr, serviceName)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pctx); err != nil {
		slog.Warn("redis unreachable, using in-memory cache", "addr", addr, "error", err)
		_ = rc.Close()
		return cache.NewMemoryCache(serviceName), func() {}
	}
	return rc, func() {
		if err := rc.Close(); err != nil {
			slog.Error("redis close failed", "error", err)
		}
	}
}
