package domain

// CityAggregate - производная группировка ресторанов по городу.
// Center - среднее координат участников (детерминированно при неизменном
// сторе). Перестраивается вместе с индексом, не хранится.
type CityAggregate struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Center Point  `json:"center"`
}

// CityIndex - индекс городов для поиска: агрегаты, отсортированные по
// убыванию количества ресторанов (при равенстве - по имени по возрастанию)
type CityIndex struct {
	Cities []CityAggregate
}
