package domain

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Viewport описывает видимую область карты: центр, зум и bbox
type Viewport struct {
	Center Point       `json:"center"`
	Zoom   float64     `json:"zoom"`
	Bounds BoundingBox `json:"bounds"`
}

// ViewportTarget - цель для fly-to анимации карты.
// Анимацией владеет рендер-виджет, мы только отдаём точку и зум.
type ViewportTarget struct {
	Center Point   `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// Statistics представляет общую статистику по загруженному датасету
type Statistics struct {
	TotalRestaurants int             `json:"total_restaurants"`
	ByProgram        map[Program]int `json:"by_program"`
	TotalCities      int             `json:"total_cities"`
	TopCities        []CityCount     `json:"top_cities"`
	Coverage         CoverageStats   `json:"coverage"`
}

// CityCount - город и количество ресторанов в нём
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// CoverageStats статистика покрытия территории датасетом
type CoverageStats struct {
	BBox       BoundingBox `json:"bbox"`
	Center     Point       `json:"center"`
	DiagonalKm float64     `json:"diagonal_km"`
}
