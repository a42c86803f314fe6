package utils

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// 文档注释：统计库连接参数
// 背景：统计写入均为单行 upsert，连接短用短还；空闲连接尽早回收，避免数据库侧超时断开后首个请求失败。
// 约束：所有字段均可由环境变量覆盖，非法值保留默认。
type StatsPool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// StatsPoolFromEnv 读取 PG_MAX_OPEN_CONNS / PG_MAX_IDLE_CONNS / PG_CONN_MAX_LIFETIME_S / PG_CONN_MAX_IDLE_S
func StatsPoolFromEnv() StatsPool {
	return StatsPool{
		MaxOpen:     envInt("PG_MAX_OPEN_CONNS", 8),
		MaxIdle:     envInt("PG_MAX_IDLE_CONNS", 2),
		MaxLifetime: time.Duration(envInt("PG_CONN_MAX_LIFETIME_S", 300)) * time.Second,
		MaxIdleTime: time.Duration(envInt("PG_CONN_MAX_IDLE_S", 60)) * time.Second,
	}
}

// StatsDSNFromEnv 优先使用 STATS_DB_DSN；否则由 PG_* 拼装，用户名与密码按 URL 规则转义
func StatsDSNFromEnv() string {
	if dsn := os.Getenv("STATS_DB_DSN"); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(envOr("PG_HOST", "localhost"), envOr("PG_PORT", "5432")),
		Path:   "/" + envOr("PG_DB", "zones"),
	}
	user := envOr("PG_USER", "postgres")
	if pass := os.Getenv("PG_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("sslmode", envOr("PG_SSLMODE", "disable"))
	q.Set("connect_timeout", strconv.Itoa(envInt("PG_CONNECT_TIMEOUT_S", 5)))
	q.Set("application_name", "delivery-zones")
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenStatsDB 打开统计库并在 ctx 内完成连通性检查；失败时连接已关闭
func OpenStatsDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", StatsDSNFromEnv())
	if err != nil {
		return nil, err
	}
	p := StatsPoolFromEnv()
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)
	db.SetConnMaxIdleTime(p.MaxIdleTime)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
