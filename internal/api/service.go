package api

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"delivery-zones/internal/cache"
	"delivery-zones/internal/logger"
	"delivery-zones/internal/metrics"
	"delivery-zones/internal/store"
	"delivery-zones/internal/zone"

	"github.com/redis/go-redis/v9"
)

// StatsStore：解析统计存储，*store.Store 即满足
type StatsStore interface {
	RecordResolve(ctx context.Context, zoneID string) error
	GetTotals(ctx context.Context) (*store.Totals, error)
	DailyByZone(ctx context.Context, day time.Time) ([]store.ZoneCount, error)
}

// Locator：按 IP 估算坐标，*geoip.Locator 即满足
type Locator interface {
	Locate(ip string) (zone.Point, bool)
}

// 文档注释：解析结果（可缓存）
// 约束：Zones 仅在请求全部命中时填充；Nearest 仅在未命中时填充。
type ResolveResult struct {
	Found   bool        `json:"found"`
	ZoneID  string      `json:"zone_id,omitempty"`
	Zones   []string    `json:"zones,omitempty"`
	Nearest *NearbyZone `json:"nearest,omitempty"`
}

type NearbyZone struct {
	ZoneID     string  `json:"zone_id"`
	DistanceKm float64 `json:"distance_km"`
}

// 文档注释：坐标解析服务
// 背景：进程内 LRU → Redis → 解析器逐级查询；缓存键包含区域表摘要与精确坐标，表替换或坐标不同都不会串键。
// 约束：缓存与统计失败只记日志，不影响解析结果；rc、lru、stats 均可为 nil。
type Service struct {
	table *zone.Table
	rc    *redis.Client
	lru   *cache.LRU[ResolveResult]
	stats StatsStore
	ttl   time.Duration
}

func NewService(t *zone.Table, rc *redis.Client, lru *cache.LRU[ResolveResult], stats StatsStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{table: t, rc: rc, lru: lru, stats: stats, ttl: ttl}
}

func (s *Service) Table() *zone.Table { return s.table }

func (s *Service) Stats() StatsStore { return s.stats }

// ResolvePoint 解析坐标所属区域；all 为 true 时同时返回全部命中区域
func (s *Service) ResolvePoint(ctx context.Context, lat, lng float64, all bool) ResolveResult {
	tBegin := time.Now()
	res := s.table.Resolver()
	key := cacheKey(res.Registry().Fingerprint(), lat, lng, all)

	out, ok := s.cached(ctx, key)
	if !ok {
		metrics.CacheMissesTotal.Inc()
		out = resolve(res, lat, lng, all)
		s.store(ctx, key, out)
	}

	metrics.ResolveTotal.WithLabelValues(metrics.ResultLabel(out.Found)).Inc()
	metrics.ResolveDurationMs.Observe(float64(time.Since(tBegin).Microseconds()) / 1000)
	if s.stats != nil {
		if err := s.stats.RecordResolve(ctx, out.ZoneID); err != nil {
			logger.L().Error("stats_record_error", "err", err)
		}
	}
	logger.L().Debug("zone_resolve", "lat", lat, "lng", lng, "found", out.Found, "zone_id", out.ZoneID)
	return out
}

func resolve(res *zone.Resolver, lat, lng float64, all bool) ResolveResult {
	var out ResolveResult
	out.ZoneID, out.Found = res.FindZone(lat, lng)
	if out.Found && all {
		out.Zones = res.FindAll(lat, lng)
	}
	if !out.Found {
		if n, ok := res.Nearest(lat, lng); ok {
			out.Nearest = &NearbyZone{ZoneID: n.ID, DistanceKm: n.DistanceKm}
		}
	}
	return out
}

func (s *Service) cached(ctx context.Context, key string) (ResolveResult, bool) {
	if s.lru != nil {
		if v, ok := s.lru.Get(key); ok {
			metrics.CacheHitsTotal.WithLabelValues("lru").Inc()
			return v, true
		}
	}
	if s.rc == nil {
		return ResolveResult{}, false
	}
	b, err := s.rc.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L().Error("redis_get_error", "key", key, "err", err)
		}
		return ResolveResult{}, false
	}
	var v ResolveResult
	if err := json.Unmarshal(b, &v); err != nil {
		logger.L().Error("redis_decode_error", "key", key, "err", err)
		return ResolveResult{}, false
	}
	metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
	if s.lru != nil {
		s.lru.Set(key, v)
	}
	return v, true
}

func (s *Service) store(ctx context.Context, key string, v ResolveResult) {
	if s.lru != nil {
		s.lru.Set(key, v)
	}
	if s.rc == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rc.Set(ctx, key, b, s.ttl).Err(); err != nil {
		logger.L().Error("redis_set_error", "key", key, "err", err)
	}
}

// cacheKey：zone:resolve:<摘要>:<lat>:<lng>[:all]，坐标按最短精确表示格式化
func cacheKey(fp string, lat, lng float64, all bool) string {
	k := "zone:resolve:" + fp + ":" + strconv.FormatFloat(lat, 'g', -1, 64) + ":" + strconv.FormatFloat(lng, 'g', -1, 64)
	if all {
		k += ":all"
	}
	return k
}
