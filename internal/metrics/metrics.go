package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zoneapi_resolve_total",
		Help: "Total number of point resolutions by outcome",
	}, []string{"result"})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "zoneapi_resolve_duration_ms",
		Help:    "Point resolution duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 20, 50, 100, 200},
	})
	ContainsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zoneapi_contains_total",
		Help: "Total number of single zone containment checks by outcome",
	}, []string{"result"})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zoneapi_cache_hits_total",
		Help: "Total resolution cache hits by layer",
	}, []string{"layer"})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zoneapi_cache_misses_total",
		Help: "Total resolution cache misses across all layers",
	})
	GeoIPLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zoneapi_geoip_lookups_total",
		Help: "Total client IP geolocation lookups by outcome",
	}, []string{"result"})
	Zones = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zoneapi_zones",
		Help: "Number of zones in the active table",
	})
)

func init() {
	prometheus.MustRegister(ResolveTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(ContainsTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(GeoIPLookupsTotal)
	prometheus.MustRegister(Zones)
}

// ResultLabel 将布尔结果映射为标签值
func ResultLabel(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}

// 文档注释：返回 Prometheus 指标监听器，在主入口挂载到 /metrics
func Handler() http.Handler { return promhttp.Handler() }
