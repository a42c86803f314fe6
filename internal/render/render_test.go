package render

import (
	"encoding/json"
	"testing"

	"delivery-zones/internal/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangle(t *testing.T) {
	reg := zone.Default()

	r, ok := Rectangle(reg, "lyon-centre")
	require.True(t, ok)
	assert.Equal(t, [2][2]float64{{45.75, 4.82}, {45.77, 4.85}}, r.Bounds)
	assert.Equal(t, RectangleStyle{
		Color:       "#8b5cf6",
		Weight:      2,
		Opacity:     0.8,
		FillColor:   "#8b5cf6",
		FillOpacity: 0.1,
	}, r.Style)

	_, ok = Rectangle(reg, "nowhere")
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	reg := zone.Default()

	l, ok := Label(reg, "paris-4")
	require.True(t, ok)
	assert.InDelta(t, 48.855, l.Anchor[0], 1e-12)
	assert.InDelta(t, 2.35, l.Anchor[1], 1e-12)
	assert.Equal(t, "zone-label", l.ClassName)
	assert.Equal(t, `<div class="zone-label-text">Paris 4ème Arrondissement</div>`, l.HTML)
	assert.Equal(t, [2]int{100, 20}, l.IconSize)
	assert.Equal(t, [2]int{50, 10}, l.IconAnchor)

	_, ok = Label(reg, "nowhere")
	assert.False(t, ok)
}

func TestLabelEscapesName(t *testing.T) {
	reg := zone.MustRegistry(zone.Zone{
		ID:     "x",
		Name:   `<b>"A&B"</b>`,
		Bounds: zone.Bounds{South: 0, West: 0, North: 1, East: 1},
	})
	l, ok := Label(reg, "x")
	require.True(t, ok)
	assert.Equal(t, `<div class="zone-label-text">&lt;b&gt;&#34;A&amp;B&#34;&lt;/b&gt;</div>`, l.HTML)
}

func TestFeatureCollection(t *testing.T) {
	reg := zone.Default()
	fc := FeatureCollection(reg)
	require.Len(t, fc.Features, 2*reg.Len())

	b, err := json.Marshal(fc)
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "FeatureCollection", doc.Type)

	first := doc.Features[0]
	assert.Equal(t, "paris-1", first.ID)
	assert.Equal(t, "Polygon", first.Geometry.Type)
	var rings [][][2]float64
	require.NoError(t, json.Unmarshal(first.Geometry.Coordinates, &rings))
	require.Len(t, rings, 1)
	assert.Equal(t, [][2]float64{
		{2.33, 48.858},
		{2.3522, 48.858},
		{2.3522, 48.8667},
		{2.33, 48.8667},
		{2.33, 48.858},
	}, rings[0])
	assert.Equal(t, "#3b82f6", first.Properties["color"])
	assert.Equal(t, 2.5, first.Properties["delivery_fee"])

	label := doc.Features[1]
	assert.Equal(t, "paris-1:label", label.ID)
	assert.Equal(t, "Point", label.Geometry.Type)
	var pt [2]float64
	require.NoError(t, json.Unmarshal(label.Geometry.Coordinates, &pt))
	assert.InDelta(t, 2.3411, pt[0], 1e-9)
	assert.InDelta(t, 48.86235, pt[1], 1e-9)

	last := doc.Features[len(doc.Features)-2]
	assert.Equal(t, "toulouse-centre", last.ID)
}
