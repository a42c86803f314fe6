// 包 api：集中注册 HTTP API 路由，在主入口挂载到 API_BASE 前缀
package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"delivery-zones/internal/logger"
	"delivery-zones/internal/metrics"
	"delivery-zones/internal/render"
	"delivery-zones/internal/store"
	"delivery-zones/internal/zone"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

var (
	errMissingCoord = errors.New("lat and lng are required")
	errInvalidCoord = errors.New("invalid coordinate")
)

// 区域对外结构，bounds 沿用 [[south, west], [north, east]]
type zoneView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Bounds        [2][2]float64 `json:"bounds"`
	Color         string        `json:"color"`
	DeliveryFee   float64       `json:"delivery_fee"`
	EstimatedTime string        `json:"estimated_time"`
}

func viewOf(z zone.Zone) zoneView {
	b := z.Bounds
	return zoneView{
		ID:            z.ID,
		Name:          z.Name,
		Bounds:        [2][2]float64{{b.South, b.West}, {b.North, b.East}},
		Color:         z.Color,
		DeliveryFee:   z.DeliveryFee,
		EstimatedTime: z.EstimatedTime,
	}
}

// 定位失败时没有坐标，lat/lng 省略而非输出 0
type resolveResponse struct {
	Lat    *float64  `json:"lat,omitempty"`
	Lng    *float64  `json:"lng,omitempty"`
	Source string    `json:"source"`
	Zone   *zoneView `json:"zone,omitempty"`
	ResolveResult
}

// Handler：HTTP 入口，locator 与 rc 可为 nil
type Handler struct {
	svc     *Service
	locator Locator
	rc      *redis.Client
}

func NewHandler(svc *Service, locator Locator, rc *redis.Client) *Handler {
	return &Handler{svc: svc, locator: locator, rc: rc}
}

// BuildRoutes 构建并返回 API 路由
func BuildRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/zones", h.handleListZones)
	r.Get("/zones/{id}", h.handleGetZone)
	r.Get("/zones/{id}/contains", h.handleContains)
	r.Get("/resolve", h.handleResolve)
	r.Get("/render/zones.geojson", h.handleGeoJSON)
	r.Get("/render/zones/{id}", h.handleRenderZone)
	r.Get("/stats", h.handleStats)
}

func (h *Handler) handleListZones(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Table().Load().All()
	out := make([]zoneView, 0, len(entries))
	for _, e := range entries {
		out = append(out, viewOf(e.Zone))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetZone(w http.ResponseWriter, r *http.Request) {
	z, ok := h.svc.Table().Load().Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(z))
}

func (h *Handler) handleContains(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lat, lng, err := parseLatLng(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ok := h.svc.Table().Resolver().Contains(lat, lng, id)
	metrics.ContainsTotal.WithLabelValues(strconv.FormatBool(ok)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{"zone_id": id, "lat": lat, "lng": lng, "contained": ok})
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := q.Get("all") == "true"
	source := "query"
	lat, lng, err := parseLatLng(r)
	if errors.Is(err, errMissingCoord) && q.Get("lat") == "" && q.Get("lng") == "" && h.locator != nil {
		ip := getClientIP(r)
		p, ok := h.locator.Locate(ip)
		metrics.GeoIPLookupsTotal.WithLabelValues(metrics.ResultLabel(ok)).Inc()
		if !ok {
			logger.L().Debug("geoip_miss", "ip", ip)
			writeJSON(w, http.StatusOK, resolveResponse{Source: "geoip"})
			return
		}
		lat, lng, err, source = p.Lat, p.Lng, nil, "geoip"
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.svc.ResolvePoint(r.Context(), lat, lng, all)
	out := resolveResponse{Lat: &lat, Lng: &lng, Source: source, ResolveResult: res}
	if res.Found {
		if z, ok := h.svc.Table().Load().Get(res.ZoneID); ok {
			v := viewOf(z)
			out.Zone = &v
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(render.FeatureCollection(h.svc.Table().Load()))
	if err != nil {
		logger.L().Error("geojson_encode_error", "err", err)
		writeError(w, http.StatusInternalServerError, "encode error")
		return
	}
	w.Header().Set("content-type", "application/geo+json")
	w.Header().Set("cache-control", "no-store")
	_, _ = w.Write(b)
}

func (h *Handler) handleRenderZone(w http.ResponseWriter, r *http.Request) {
	reg := h.svc.Table().Load()
	id := chi.URLParam(r, "id")
	rect, ok := render.Rectangle(reg, id)
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}
	label, _ := render.Label(reg, id)
	writeJSON(w, http.StatusOK, map[string]any{"rectangle": rect, "label": label})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Stats()
	if st == nil {
		writeError(w, http.StatusNotFound, "stats disabled")
		return
	}
	if d := r.URL.Query().Get("day"); d != "" {
		h.handleDailyStats(w, r, st, d)
		return
	}
	t, err := st.GetTotals(r.Context())
	if err != nil {
		logger.L().Error("stats_totals_error", "err", err)
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleDailyStats：GET /stats?day=YYYY-MM-DD，按命中次数降序返回当日区域分布，未命中计在空 zone_id 下
func (h *Handler) handleDailyStats(w http.ResponseWriter, r *http.Request, st StatsStore, d string) {
	day, err := time.Parse(dayLayout, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day, want YYYY-MM-DD")
		return
	}
	zones, err := st.DailyByZone(r.Context(), day)
	if err != nil {
		logger.L().Error("stats_daily_error", "day", d, "err", err)
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, dailyStats{Day: day.Format(dayLayout), Zones: zones})
}

const dayLayout = "2006-01-02"

type dailyStats struct {
	Day   string            `json:"day"`
	Zones []store.ZoneCount `json:"zones"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	redisState := "disabled"
	if h.rc != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		redisState = "ok"
		if err := h.rc.Ping(ctx).Err(); err != nil {
			redisState = "error"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"zones":  h.svc.Table().Load().Len(),
		"redis":  redisState,
	})
}

// parseLatLng 读取 lat/lng 查询参数；NaN 与无穷值无法 JSON 编码，在此拒绝
func parseLatLng(r *http.Request) (float64, float64, error) {
	q := r.URL.Query()
	ls, gs := q.Get("lat"), q.Get("lng")
	if ls == "" || gs == "" {
		return 0, 0, errMissingCoord
	}
	lat, err := strconv.ParseFloat(ls, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return 0, 0, errInvalidCoord
	}
	lng, err := strconv.ParseFloat(gs, 64)
	if err != nil || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, 0, errInvalidCoord
	}
	return lat, lng, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
