package dto

// ClustersRequest - запрос кластеров для вьюпорта.
// sw/ne - углы видимого bbox, programs - активный фильтр программ
// (пусто = все видимы).
type ClustersRequest struct {
	SwLat    float64  `json:"sw_lat" validate:"min=-90,max=90"`
	SwLon    float64  `json:"sw_lon" validate:"min=-180,max=180"`
	NeLat    float64  `json:"ne_lat" validate:"min=-90,max=90"`
	NeLon    float64  `json:"ne_lon" validate:"min=-180,max=180"`
	Zoom     float64  `json:"zoom" validate:"min=0,max=22"`
	Programs []string `json:"programs,omitempty"`
}

// ViewportRestaurantsRequest - запрос ресторанов в bbox с пагинацией
type ViewportRestaurantsRequest struct {
	SwLat    float64  `json:"sw_lat" validate:"min=-90,max=90"`
	SwLon    float64  `json:"sw_lon" validate:"min=-180,max=180"`
	NeLat    float64  `json:"ne_lat" validate:"min=-90,max=90"`
	NeLon    float64  `json:"ne_lon" validate:"min=-180,max=180"`
	Programs []string `json:"programs,omitempty"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset   int      `json:"offset" validate:"omitempty,min=0"`
}
