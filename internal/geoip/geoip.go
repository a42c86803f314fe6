// 包 geoip：按客户端 IP 估算坐标，作为未携带经纬度时的解析兜底
package geoip

import (
	"net"

	"delivery-zones/internal/logger"
	"delivery-zones/internal/zone"

	"github.com/oschwald/geoip2-golang"
)

// 文档注释：基于 MaxMind GeoIP2/GeoLite2 City 库的定位器
// 约束：仅城市级精度；库中无坐标（精度半径为 0 且经纬度均为 0）视为未命中。
type Locator struct {
	r *geoip2.Reader
}

func Open(path string) (*Locator, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Locator{r: r}, nil
}

func (l *Locator) Close() error { return l.r.Close() }

// Locate 返回 IP 对应的近似坐标
func (l *Locator) Locate(ip string) (zone.Point, bool) {
	p := net.ParseIP(ip)
	if p == nil {
		return zone.Point{}, false
	}
	rec, err := l.r.City(p)
	if err != nil {
		logger.L().Debug("geoip_lookup_error", "ip", ip, "err", err)
		return zone.Point{}, false
	}
	loc := rec.Location
	if loc.AccuracyRadius == 0 && loc.Latitude == 0 && loc.Longitude == 0 {
		return zone.Point{}, false
	}
	return zone.Point{Lat: loc.Latitude, Lng: loc.Longitude}, true
}
