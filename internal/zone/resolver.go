package zone

import "math"

// 文档注释：区域解析器
// 背景：对注册表做几何查询；包含判定为经纬度平面上的闭区间比较，不做大圆修正，适用于城市级小矩形。
// 约束：所有查询均为全函数，不返回错误；未知 id、越界或 NaN 坐标统一表现为未命中。
type Resolver struct {
	reg *Registry
	idx *boundsIndex
	kd  *kdNode
}

// Nearby：最近区域提示
type Nearby struct {
	ID         string
	DistanceKm float64
}

func NewResolver(reg *Registry) *Resolver {
	if reg == nil {
		reg = MustRegistry()
	}
	var cs []center
	for i, z := range reg.zones {
		if finite(z.Bounds) {
			cs = append(cs, center{pos: i, c: z.Bounds.Center()})
		}
	}
	return &Resolver{reg: reg, idx: buildIndex(reg.zones), kd: buildKD(cs, 0)}
}

func (r *Resolver) Registry() *Registry { return r.reg }

// Contains 判定点是否在指定区域内；未知 id 返回 false
func (r *Resolver) Contains(lat, lng float64, id string) bool {
	z, ok := r.reg.Get(id)
	if !ok {
		return false
	}
	return z.Bounds.Contains(Point{Lat: lat, Lng: lng})
}

// FindZone 按注册表顺序返回第一个包含该点的区域 id
func (r *Resolver) FindZone(lat, lng float64) (string, bool) {
	pt := Point{Lat: lat, Lng: lng}
	for _, pos := range r.idx.candidates(pt) {
		z := r.reg.zones[pos]
		if z.Bounds.Contains(pt) {
			return z.ID, true
		}
	}
	return "", false
}

// FindAll 按注册表顺序返回所有包含该点的区域 id；无命中返回空切片
func (r *Resolver) FindAll(lat, lng float64) []string {
	pt := Point{Lat: lat, Lng: lng}
	out := []string{}
	for _, pos := range r.idx.candidates(pt) {
		z := r.reg.zones[pos]
		if z.Bounds.Contains(pt) {
			out = append(out, z.ID)
		}
	}
	return out
}

// Nearest 返回中心点距离最近的区域（Haversine 千米）
func (r *Resolver) Nearest(lat, lng float64) (Nearby, bool) {
	if r.kd == nil || math.IsNaN(lat) || math.IsNaN(lng) {
		return Nearby{}, false
	}
	pos, d := nearest(r.kd, Point{Lat: lat, Lng: lng})
	if pos < 0 {
		return Nearby{}, false
	}
	return Nearby{ID: r.reg.zones[pos].ID, DistanceKm: d}, true
}
