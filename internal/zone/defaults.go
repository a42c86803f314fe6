package zone

// 默认配送区域表，顺序即裁决顺序；边界按 [[south, west], [north, east]] 两角点书写
var defaultZones = []Zone{
	{
		ID:            "paris-1",
		Name:          "Paris 1er Arrondissement",
		Bounds:        NewBounds(Point{48.8580, 2.3300}, Point{48.8667, 2.3522}),
		Color:         "#3b82f6",
		DeliveryFee:   2.50,
		EstimatedTime: "25-35 min",
	},
	{
		ID:            "paris-2",
		Name:          "Paris 2ème Arrondissement",
		Bounds:        NewBounds(Point{48.8600, 2.3400}, Point{48.8700, 2.3600}),
		Color:         "#10b981",
		DeliveryFee:   2.50,
		EstimatedTime: "20-30 min",
	},
	{
		ID:            "paris-3",
		Name:          "Paris 3ème Arrondissement",
		Bounds:        NewBounds(Point{48.8600, 2.3500}, Point{48.8700, 2.3700}),
		Color:         "#f59e0b",
		DeliveryFee:   3.00,
		EstimatedTime: "25-35 min",
	},
	{
		ID:            "paris-4",
		Name:          "Paris 4ème Arrondissement",
		Bounds:        NewBounds(Point{48.8500, 2.3400}, Point{48.8600, 2.3600}),
		Color:         "#ef4444",
		DeliveryFee:   3.00,
		EstimatedTime: "30-40 min",
	},
	{
		ID:            "lyon-centre",
		Name:          "Lyon Centre",
		Bounds:        NewBounds(Point{45.7500, 4.8200}, Point{45.7700, 4.8500}),
		Color:         "#8b5cf6",
		DeliveryFee:   3.50,
		EstimatedTime: "35-45 min",
	},
	{
		ID:            "marseille-centre",
		Name:          "Marseille Centre",
		Bounds:        NewBounds(Point{43.2800, 5.3700}, Point{43.3000, 5.4000}),
		Color:         "#06b6d4",
		DeliveryFee:   4.00,
		EstimatedTime: "40-50 min",
	},
	{
		ID:            "toulouse-centre",
		Name:          "Toulouse Centre",
		Bounds:        NewBounds(Point{43.5900, 1.4200}, Point{43.6200, 1.4600}),
		Color:         "#f97316",
		DeliveryFee:   3.00,
		EstimatedTime: "30-40 min",
	},
}

// Default 以内置区域表构造注册表
func Default() *Registry {
	return MustRegistry(defaultZones...)
}
