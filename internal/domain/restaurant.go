package domain

// Program - идентификатор дайнинг-программы, к которой относится ресторан
type Program string

const (
	ProgramAmex  Program = "amex"
	ProgramChase Program = "chase"
)

// Restaurant представляет ресторан из дайнинг-программы.
// Запись иммутабельна после загрузки: стор владеет единственной копией,
// фильтрация и кластеризация только читают.
type Restaurant struct {
	Name       string  `json:"name"`
	Program    Program `json:"program"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	BookingURL *string `json:"booking_url,omitempty"`
}

// Location возвращает координаты ресторана как Point
func (r Restaurant) Location() Point {
	return Point{Lat: r.Lat, Lon: r.Lon}
}

// CityName возвращает город или пустую строку
func (r Restaurant) CityName() string {
	if r.City == nil {
		return ""
	}
	return *r.City
}
