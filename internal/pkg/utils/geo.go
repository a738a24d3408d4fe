package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Project переводит координаты в пиксели мировой карты (web mercator)
// для заданного зума. worldSize = tileSize * 2^zoom.
func Project(lat, lon, worldSize float64) (x, y float64) {
	x = (lon/360.0 + 0.5) * worldSize

	sin := math.Sin(lat * math.Pi / 180.0)
	y = (0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi) * worldSize
	if y < 0 {
		y = 0
	}
	if y > worldSize {
		y = worldSize
	}
	return x, y
}

// Unproject - обратная проекция из мировых пикселей в координаты
func Unproject(x, y, worldSize float64) (lat, lon float64) {
	lon = (x/worldSize - 0.5) * 360.0
	y2 := (180.0 - y/worldSize*360.0) * math.Pi / 180.0
	lat = 360.0*math.Atan(math.Exp(y2))/math.Pi - 90.0
	return lat, lon
}
