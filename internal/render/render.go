// 包 render：地图渲染协作方的数据接口，只读取区域几何与样式，不反向依赖解析逻辑
package render

import (
	"html"

	"delivery-zones/internal/zone"
)

// Source：渲染层所需的最小只读接口，*zone.Registry 即满足
type Source interface {
	Get(id string) (zone.Zone, bool)
	All() []zone.Entry
}

// 矩形描边与填充样式
const (
	strokeWeight  = 2
	strokeOpacity = 0.8
	fillOpacity   = 0.1
)

// 标签图标尺寸与锚点（像素）
var (
	labelIconSize   = [2]int{100, 20}
	labelIconAnchor = [2]int{50, 10}
)

type RectangleStyle struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// 文档注释：区域矩形
// 约束：Bounds 采用 [[south, west], [north, east]]，与区域边界完全一致。
type RectangleShape struct {
	ZoneID string         `json:"zone_id"`
	Bounds [2][2]float64  `json:"bounds"`
	Style  RectangleStyle `json:"style"`
}

// 文档注释：区域中心标签
// 约束：Anchor 为边界两角点的算术中点 [lat, lng]；名称做 HTML 转义后嵌入。
type LabelShape struct {
	ZoneID     string     `json:"zone_id"`
	Anchor     [2]float64 `json:"anchor"`
	ClassName  string     `json:"className"`
	HTML       string     `json:"html"`
	IconSize   [2]int     `json:"iconSize"`
	IconAnchor [2]int     `json:"iconAnchor"`
}

// Rectangle 构造区域矩形；未知 id 返回 false
func Rectangle(src Source, id string) (RectangleShape, bool) {
	z, ok := src.Get(id)
	if !ok {
		return RectangleShape{}, false
	}
	return rectangleOf(z), true
}

// Label 构造区域标签；未知 id 返回 false
func Label(src Source, id string) (LabelShape, bool) {
	z, ok := src.Get(id)
	if !ok {
		return LabelShape{}, false
	}
	return labelOf(z), true
}

func rectangleOf(z zone.Zone) RectangleShape {
	b := z.Bounds
	return RectangleShape{
		ZoneID: z.ID,
		Bounds: [2][2]float64{{b.South, b.West}, {b.North, b.East}},
		Style: RectangleStyle{
			Color:       z.Color,
			Weight:      strokeWeight,
			Opacity:     strokeOpacity,
			FillColor:   z.Color,
			FillOpacity: fillOpacity,
		},
	}
}

func labelOf(z zone.Zone) LabelShape {
	c := z.Bounds.Center()
	return LabelShape{
		ZoneID:     z.ID,
		Anchor:     [2]float64{c.Lat, c.Lng},
		ClassName:  "zone-label",
		HTML:       `<div class="zone-label-text">` + html.EscapeString(z.Name) + `</div>`,
		IconSize:   labelIconSize,
		IconAnchor: labelIconAnchor,
	}
}
