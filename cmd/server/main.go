package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"maintenance-route-service/internal/adapters/cache"
	"maintenance-route-service/internal/adapters/devices"
	"maintenance-route-service/internal/adapters/events"
	"maintenance-route-service/internal/adapters/repositories"
	"maintenance-route-service/internal/adapters/storage"
	"maintenance-route-service/internal/api"
	"maintenance-route-service/internal/api/handlers"
	"maintenance-route-service/internal/config"
	"maintenance-route-service/internal/platform/db"
	"maintenance-route-service/internal/platform/graceful"
	"maintenance-route-service/internal/ports"
	"maintenance-route-service/internal/services"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.Printf("close failed: err=%v", err)
			}
		}
	}()

	source, closer, err := newDeviceSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	planner := &services.MaintenancePlanner{Source: source}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, route cache disabled: addr=%s err=%v", cfg.RedisAddr, err)
			_ = client.Close()
		} else {
			planner.Cache = cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
			closers = append(closers, client)
			log.Printf("route cache enabled: addr=%s ttl=%s", cfg.RedisAddr, cfg.RouteCacheTTL)
		}
	}

	if cfg.MinIO.Endpoint != "" {
		archive, err := storage.NewS3RouteArchive(
			ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.UseSSL, cfg.MinIO.Bucket,
		)
		if err != nil {
			log.Printf("minio unavailable, route archive disabled: endpoint=%s err=%v", cfg.MinIO.Endpoint, err)
		} else {
			planner.Archive = archive
			log.Printf("route archive enabled: endpoint=%s bucket=%s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
		}
	}

	if cfg.KafkaBroker != "" {
		publisher, err := events.NewKafkaRoutePublisher(cfg.KafkaBroker, cfg.RouteTopic)
		if err != nil {
			log.Fatal(err)
		}
		planner.Publisher = publisher
		closers = append(closers, publisher)
		log.Printf("route events enabled: broker=%s topic=%s", cfg.KafkaBroker, cfg.RouteTopic)
	}

	router := api.NewRouter(api.Deps{
		Source:  source,
		Planner: planner,
		Defaults: handlers.MaintenanceDefaults{
			Depot:      cfg.Depot,
			DepotName:  cfg.DepotName,
			PeriodDays: cfg.PeriodDays,
			BufferKm:   cfg.SuggestionBufferKm,
		},
	})

	// Timeouts allow for a slow upstream device API on cold requests.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: err=%v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: err=%v", err)
	}
	log.Println("Server stopped")
}

// newDeviceSource picks the device source: Postgres when DATABASE_URL is
// set, the upstream device API when DEVICE_API_URL is set, otherwise the
// seed file held in memory.
func newDeviceSource(ctx context.Context, cfg *config.Config) (ports.DeviceSource, io.Closer, error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("device source: %w", err)
		}
		log.Println("device source=postgres")
		return repositories.NewSQLDeviceRepository(conn), conn, nil

	case cfg.DeviceAPIURL != "":
		src, err := devices.NewHTTPDeviceSource(cfg.DeviceAPIURL, cfg.DeviceAPIToken)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("device source=api url=%s", cfg.DeviceAPIURL)
		return src, nil, nil

	default:
		seeded, err := repositories.LoadDeviceSeeds(cfg.SeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("device source: %w", err)
		}
		log.Printf("device source=memory seed=%s devices=%d", cfg.SeedPath, len(seeded))
		return devices.NewMemoryDeviceSource(seeded), nil, nil
	}
}
