package zone

import "math"

// 点坐标（WGS84，纬度在前）
type Point struct {
	Lat float64
	Lng float64
}

// 文档注释：配送区域的矩形边界
// 背景：沿用地图组件的两角点表示 [[south, west], [north, east]]，以经纬度平面矩形近似；
// 约束：South <= North 且 West <= East；不做大圆修正，仅适用于城市级小范围区域。
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// NewBounds 以西南角与东北角构造边界
func NewBounds(sw, ne Point) Bounds {
	return Bounds{South: sw.Lat, West: sw.Lng, North: ne.Lat, East: ne.Lng}
}

func (b Bounds) SouthWest() Point { return Point{Lat: b.South, Lng: b.West} }
func (b Bounds) NorthEast() Point { return Point{Lat: b.North, Lng: b.East} }

// Center：两角点的算术中点，用于标签锚点与最近邻兜底
func (b Bounds) Center() Point {
	return Point{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// Contains：包含判定，四条边与四个角均视为命中；NaN 坐标不命中任何边界
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

func (b Bounds) valid() bool {
	for _, v := range [4]float64{b.South, b.West, b.North, b.East} {
		if math.IsNaN(v) {
			return false
		}
	}
	return b.South <= b.North && b.West <= b.East
}

// 文档注释：配送区域
// 约束：Color 与 EstimatedTime 对核心不透明，原样传给渲染层与调用方；DeliveryFee 非负。
type Zone struct {
	ID            string
	Name          string
	Bounds        Bounds
	Color         string
	DeliveryFee   float64
	EstimatedTime string
}

// Entry：注册表枚举项，保持插入顺序
type Entry struct {
	ID   string
	Zone Zone
}
