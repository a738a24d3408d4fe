package dto

import "github.com/dining-map/internal/domain"

// GeoJSON-представление кластеров для прямого скармливания map-виджету

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // lon, lat
}

// ToGeoJSON преобразует узлы кластеризации в FeatureCollection
func ToGeoJSON(nodes []domain.ClusterNode) *FeatureCollection {
	features := make([]Feature, len(nodes))
	for i, n := range nodes {
		properties := map[string]interface{}{
			"cluster":     n.IsCluster(),
			"point_count": n.Count,
			"size":        string(n.Size),
		}
		if n.Restaurant != nil {
			properties["name"] = n.Restaurant.Name
			properties["program"] = string(n.Restaurant.Program)
			if n.Restaurant.City != nil {
				properties["city"] = *n.Restaurant.City
			}
			if n.Restaurant.BookingURL != nil {
				properties["booking_url"] = *n.Restaurant.BookingURL
			}
		}

		features[i] = Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{n.Center.Lon, n.Center.Lat},
			},
			Properties: properties,
		}
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
