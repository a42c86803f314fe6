// 程序入口：读取配置、构建区域表与依赖并启动 HTTP 服务；路由注册在 internal/api
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"delivery-zones/internal/api"
	"delivery-zones/internal/cache"
	"delivery-zones/internal/geoip"
	"delivery-zones/internal/logger"
	"delivery-zones/internal/metrics"
	"delivery-zones/internal/middleware"
	"delivery-zones/internal/migrate"
	"delivery-zones/internal/store"
	"delivery-zones/internal/utils"
	"delivery-zones/internal/zone"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	l.Debug("log_init_ok")
	if err := run(l); err != nil {
		l.Error("listen_error", "err", err)
		os.Exit(1)
	}
}

// run 装配依赖并阻塞至退出信号；返回前按 defer 顺序关闭 Redis、统计库与 GeoIP
func run(l *slog.Logger) error {
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)

	// 区域表：启动时一次性构造，之后只读
	table := zone.NewTable(zone.Default())
	metrics.Zones.Set(float64(table.Load().Len()))
	l.Info("zones_ready", "count", table.Load().Len(), "fingerprint", table.Load().Fingerprint())

	rc := openRedis(l)
	if rc != nil {
		defer rc.Close()
	}

	var stats api.StatsStore
	if os.Getenv("STATS_DB_ENABLE") == "true" {
		if db := openStatsDB(l); db != nil {
			defer db.Close()
			stats = store.AttachDB(db)
		}
	} else {
		l.Info("stats_disabled")
	}

	var locator api.Locator
	geoipPath := os.Getenv("GEOIP_CITY_PATH")
	if geoipPath == "" {
		geoipPath = filepath.Join("data", "geoip", "GeoLite2-City.mmdb")
	}
	if gl, err := geoip.Open(geoipPath); err == nil {
		defer gl.Close()
		locator = gl
		l.Info("geoip_ready", "path", geoipPath)
	} else {
		l.Info("geoip_disabled", "path", geoipPath, "err", err)
	}

	ttl := time.Hour
	if s := os.Getenv("RESOLVE_CACHE_TTL_S"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}
	lruSize := 4096
	if s := os.Getenv("RESOLVE_LRU_SIZE"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n >= 0 {
			lruSize = n
		}
	}
	svc := api.NewService(table, rc, cache.NewLRU[api.ResolveResult](lruSize, ttl), stats, ttl)

	mux := http.NewServeMux()
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, api.BuildRoutes(api.NewHandler(svc, locator, rc))))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		l.Info("listening", "addr", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case err := <-errCh:
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 7*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			l.Error("shutdown_error", "err", err)
		}
		l.Info("shutdown_ok")
	}
	return nil
}

func openRedis(l *slog.Logger) *redis.Client {
	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		l.Error("redis_ping_error", "err", err)
		_ = rc.Close()
		return nil
	}
	l.Info("redis_ping_ok")
	return rc
}

func openStatsDB(l *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := utils.OpenStatsDB(ctx)
	if err != nil {
		l.Error("db_open_error", "err", err)
		return nil
	}
	if err := migrate.EnsureSchema(db); err != nil {
		l.Error("schema_error", "err", err)
		_ = db.Close()
		return nil
	}
	l.Info("db_open_ok")
	return db
}
