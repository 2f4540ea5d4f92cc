package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"storefront-service/internal/api"
	"storefront-service/internal/apper"
	"storefront-service/internal/cart"
	"storefront-service/internal/config"
	"storefront-service/internal/database"
	"storefront-service/internal/events"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

type repositories struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	reviews  repository.ReviewRepository
}

// closers run in reverse order on shutdown.
type closers []func()

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	var cleanup closers
	defer cleanup.close()

	repos, err := openStore(ctx, cfg, &cleanup)
	if err != nil {
		return err
	}

	carts, wishlist, err := openCarts(ctx, cfg, &cleanup)
	if err != nil {
		return err
	}

	publisher := events.Publisher(events.NoopPublisher{})
	var statusCh events.Channel

	if cfg.AMQPURL != "" {
		conn, ch, err := events.Dial(cfg.AMQPURL)
		if err != nil {
			return err
		}
		cleanup = append(cleanup, func() { conn.Close() })

		p, err := events.NewAMQPPublisher(ch)
		if err != nil {
			return err
		}
		publisher = p

		statusCh, err = conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open a consumer channel: %w", err)
		}
	}

	orders := service.NewOrderService(repos.orders, publisher, nil)

	if statusCh != nil {
		consumer := events.NewStatusConsumer(statusCh, orders)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Printf("storefront: status consumer stopped: %v", err)
			}
		}()
		log.Printf("storefront: publishing to %s, consuming %s", events.OrderQueue, events.StatusUpdateQueue)
	}

	router := api.NewRouter(api.Services{
		Products: service.NewProductService(repos.products, nil),
		Reviews:  service.NewReviewService(repos.reviews, orders, nil),
		Orders:   orders,
		Checkout: service.NewCheckoutService(carts, wishlist, repos.products, orders, nil),
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("storefront: listening on %s (store=%s, cart=%s)", cfg.HTTPAddr, cfg.StoreBackend, cfg.CartBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Printf("storefront: shutting down")
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, cleanup *closers) (repositories, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.ConnectDB(ctx, cfg.DB)
		if err != nil {
			return repositories{}, err
		}
		*cleanup = append(*cleanup, pool.Close)

		applied, err := database.Migrate(ctx, pool)
		if err != nil {
			return repositories{}, err
		}
		if len(applied) > 0 {
			log.Printf("storefront: applied migrations %v", applied)
		}
		return repositories{
			products: repository.NewProductRepository(pool),
			orders:   repository.NewOrderRepository(pool),
			reviews:  repository.NewReviewRepository(pool),
		}, nil

	case config.BackendApper:
		client := apper.NewHTTPClient(cfg.ApperURL, cfg.ApperProjectID, cfg.ApperPublicKey, cfg.ApperTimeout)
		return apperRepositories(client), nil
	}

	client := apper.NewMemoryClient()
	if cfg.SeedDemoData {
		ids := repository.SeedCatalog(client, repository.DemoCatalog()...)
		log.Printf("storefront: seeded %d demo products", len(ids))
	}
	return apperRepositories(client), nil
}

func apperRepositories(client apper.Client) repositories {
	return repositories{
		products: repository.NewApperProductRepository(client),
		orders:   repository.NewApperOrderRepository(client),
		reviews:  repository.NewApperReviewRepository(client),
	}
}

func openCarts(ctx context.Context, cfg *config.Config, cleanup *closers) (cart.Store, cart.WishlistStore, error) {
	if cfg.CartBackend != config.BackendRedis {
		return cart.NewMemoryStore(), cart.NewMemoryWishlist(), nil
	}

	rdb, err := cart.ConnectRedis(ctx, cart.RedisConfig{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	*cleanup = append(*cleanup, func() { rdb.Close() })
	return cart.NewRedisStore(rdb), cart.NewRedisWishlist(rdb), nil
}
