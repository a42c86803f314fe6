package render

import (
	"delivery-zones/internal/zone"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// 文档注释：导出 GeoJSON FeatureCollection
// 背景：供通用地图组件直接加载；每个区域输出一个矩形 Polygon 与一个标签 Point，顺序与注册表一致。
// 约束：GeoJSON 坐标为 [lng, lat]；外环按 SW→SE→NE→NW→SW 闭合。
func FeatureCollection(src Source) *geojson.FeatureCollection {
	entries := src.All()
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, 2*len(entries))}
	for _, e := range entries {
		fc.Features = append(fc.Features, polygonFeature(e.Zone), labelFeature(e.Zone))
	}
	return fc
}

func polygonFeature(z zone.Zone) *geojson.Feature {
	b := z.Bounds
	ring := []geom.Coord{
		{b.West, b.South},
		{b.East, b.South},
		{b.East, b.North},
		{b.West, b.North},
		{b.West, b.South},
	}
	r := rectangleOf(z)
	return &geojson.Feature{
		ID:       z.ID,
		Geometry: geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ring}),
		Properties: map[string]interface{}{
			"kind":           "zone",
			"zone_id":        z.ID,
			"name":           z.Name,
			"color":          z.Color,
			"delivery_fee":   z.DeliveryFee,
			"estimated_time": z.EstimatedTime,
			"weight":         r.Style.Weight,
			"opacity":        r.Style.Opacity,
			"fillColor":      r.Style.FillColor,
			"fillOpacity":    r.Style.FillOpacity,
		},
	}
}

func labelFeature(z zone.Zone) *geojson.Feature {
	c := z.Bounds.Center()
	l := labelOf(z)
	return &geojson.Feature{
		ID:       z.ID + ":label",
		Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{c.Lng, c.Lat}),
		Properties: map[string]interface{}{
			"kind":      "label",
			"zone_id":   z.ID,
			"name":      z.Name,
			"className": l.ClassName,
			"html":      l.HTML,
		},
	}
}
