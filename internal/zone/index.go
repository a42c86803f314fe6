package zone

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// 文档注释：区域边界的 R-Tree 候选索引
// 背景：先以 R-Tree 过滤候选，再用 Bounds.Contains 精确判定；候选按注册表位置重排，不改变命中顺序。
// 约束：含无穷边界的区域不入树，作为常驻候选参与线性判定。
type boundsIndex struct {
	tree  *rtreego.Rtree
	loose []int
}

type indexedBounds struct {
	pos  int
	rect rtreego.Rect
}

func (b *indexedBounds) Bounds() rtreego.Rect { return b.rect }

func buildIndex(zones []Zone) *boundsIndex {
	idx := &boundsIndex{tree: rtreego.NewTree(2, 2, 8)}
	for i, z := range zones {
		if !finite(z.Bounds) {
			idx.loose = append(idx.loose, i)
			continue
		}
		rect, err := rtreego.NewRectFromPoints(
			rtreego.Point{z.Bounds.South, z.Bounds.West},
			rtreego.Point{z.Bounds.North, z.Bounds.East},
		)
		if err != nil {
			idx.loose = append(idx.loose, i)
			continue
		}
		idx.tree.Insert(&indexedBounds{pos: i, rect: rect})
	}
	return idx
}

// candidates 返回可能包含该点的区域位置（升序）
func (idx *boundsIndex) candidates(p Point) []int {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return append([]int(nil), idx.loose...)
	}
	hits := idx.tree.SearchIntersect(queryRect(p))
	out := make([]int, 0, len(hits)+len(idx.loose))
	for _, h := range hits {
		out = append(out, h.(*indexedBounds).pos)
	}
	out = append(out, idx.loose...)
	sort.Ints(out)
	return out
}

// queryRect：以相邻可表示浮点数包住查询点。
// R-Tree 相交判定不含贴边，固定容差在大坐标上会被舍入为零宽，贴边区域因而漏选。
func queryRect(p Point) rtreego.Rect {
	// 两点同为二维，NewRectFromPoints 不会返回错误
	r, _ := rtreego.NewRectFromPoints(
		rtreego.Point{math.Nextafter(p.Lat, math.Inf(-1)), math.Nextafter(p.Lng, math.Inf(-1))},
		rtreego.Point{math.Nextafter(p.Lat, math.Inf(1)), math.Nextafter(p.Lng, math.Inf(1))},
	)
	return r
}

func finite(b Bounds) bool {
	for _, v := range [4]float64{b.South, b.West, b.North, b.East} {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
