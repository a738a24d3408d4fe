package dto

import "github.com/dining-map/internal/domain"

// RestaurantDTO - ресторан в ответе API
type RestaurantDTO struct {
	Name       string  `json:"name"`
	Program    string  `json:"program"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	BookingURL *string `json:"booking_url,omitempty"`
}

// ClusterNodeDTO - узел кластеризации в ответе API.
// Одиночный маркер несёт restaurant, агрегат - restaurants.
type ClusterNodeDTO struct {
	Center      domain.Point    `json:"center"`
	Count       int             `json:"count"`
	Size        string          `json:"size"`
	Restaurant  *RestaurantDTO  `json:"restaurant,omitempty"`
	Restaurants []RestaurantDTO `json:"restaurants,omitempty"`
}

// ClustersResponse - набор узлов для вьюпорта
type ClustersResponse struct {
	Clusters []ClusterNodeDTO `json:"clusters"`
	Total    int              `json:"total"`
}

// ConvertRestaurant преобразует доменный ресторан в DTO
func ConvertRestaurant(r domain.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		Name:       r.Name,
		Program:    string(r.Program),
		Lat:        r.Lat,
		Lon:        r.Lon,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		BookingURL: r.BookingURL,
	}
}

// ConvertClusterNodes преобразует узлы кластеризации в ответ API
func ConvertClusterNodes(nodes []domain.ClusterNode) ClustersResponse {
	clusters := make([]ClusterNodeDTO, len(nodes))
	for i, n := range nodes {
		item := ClusterNodeDTO{
			Center: n.Center,
			Count:  n.Count,
			Size:   string(n.Size),
		}
		if n.Restaurant != nil {
			r := ConvertRestaurant(*n.Restaurant)
			item.Restaurant = &r
		} else {
			item.Restaurants = make([]RestaurantDTO, len(n.Restaurants))
			for j, r := range n.Restaurants {
				item.Restaurants[j] = ConvertRestaurant(r)
			}
		}
		clusters[i] = item
	}
	return ClustersResponse{
		Clusters: clusters,
		Total:    len(clusters),
	}
}
