package zone

import "math"

// 子午线方向每度对应的千米数（地球半径 6371km）
const kmPerDegreeLat = 6371.0 * math.Pi / 180

// 文档注释：区域中心点 KD-Tree（二维经纬）
// 背景：点未落入任何区域时，为调用方提供最近配送区域及距离，仅作提示，不参与包含判定。
// 约束：按纬度/经度交替分割；仅纬度轴做剪枝，经度轴的度-千米换算随纬度变化，不剪枝以免漏解。
type kdNode struct {
	pos int
	c   Point
	ax  int // 0:lat,1:lng
	l   *kdNode
	r   *kdNode
}

type center struct {
	pos int
	c   Point
}

func buildKD(cs []center, depth int) *kdNode {
	if len(cs) == 0 {
		return nil
	}
	ax := depth % 2
	mid := len(cs) / 2
	selectNth(cs, mid, ax)
	node := &kdNode{pos: cs[mid].pos, c: cs[mid].c, ax: ax}
	node.l = buildKD(cs[:mid], depth+1)
	node.r = buildKD(cs[mid+1:], depth+1)
	return node
}

// 原地 nth 元素选择
func selectNth(a []center, n int, ax int) {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := partition(a, lo, hi, (lo+hi)/2, ax)
		if p == n {
			return
		}
		if n < p {
			hi = p - 1
		} else {
			lo = p + 1
		}
	}
}

func partition(a []center, lo, hi, pivot, ax int) int {
	pv := a[pivot]
	a[pivot], a[hi] = a[hi], a[pivot]
	i := lo
	for j := lo; j < hi; j++ {
		if axisValue(a[j].c, ax) < axisValue(pv.c, ax) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}

func axisValue(p Point, ax int) float64 {
	if ax == 0 {
		return p.Lat
	}
	return p.Lng
}

// nearest 返回距离最近的中心点位置与距离（千米）；距离相等时取注册表中靠前者
func nearest(node *kdNode, pt Point) (int, float64) {
	best := -1
	bestD := math.Inf(1)
	var dfs func(n *kdNode)
	dfs = func(n *kdNode) {
		if n == nil {
			return
		}
		d := haversine(pt.Lat, pt.Lng, n.c.Lat, n.c.Lng)
		if d < bestD || (d == bestD && n.pos < best) {
			bestD = d
			best = n.pos
		}
		key, q := axisValue(pt, n.ax), axisValue(n.c, n.ax)
		first, second := n.l, n.r
		if key > q {
			first, second = n.r, n.l
		}
		dfs(first)
		if n.ax == 1 || math.Abs(key-q)*kmPerDegreeLat <= bestD {
			dfs(second)
		}
	}
	dfs(node)
	return best, bestD
}

// 球面距离（Haversine），返回千米
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
