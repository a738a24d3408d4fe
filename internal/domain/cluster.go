package domain

// SizeClass - визуальный вес маркера кластера
type SizeClass string

const (
	SizeSingle SizeClass = "single"
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// ClusterNode - производный, одноразовый узел кластеризации.
// Либо одиночный ресторан (Count == 1, Restaurant != nil), либо агрегат
// ближайших ресторанов (Count > 1, Restaurants - участники в порядке стора).
// Center агрегата - центроид участников. Пересчитывается целиком при каждом
// изменении фильтра или вьюпорта и никогда не мутируется на месте.
type ClusterNode struct {
	Center      Point        `json:"center"`
	Count       int          `json:"count"`
	Size        SizeClass    `json:"size"`
	Restaurant  *Restaurant  `json:"restaurant,omitempty"`
	Restaurants []Restaurant `json:"restaurants,omitempty"`
}

// IsCluster сообщает, агрегат ли это (в отличие от одиночного маркера)
func (n ClusterNode) IsCluster() bool {
	return n.Count > 1
}

// Members возвращает участников узла независимо от его вида
func (n ClusterNode) Members() []Restaurant {
	if n.Count == 1 && n.Restaurant != nil {
		return []Restaurant{*n.Restaurant}
	}
	return n.Restaurants
}

// SizeTiers - пороги количества точек для визуальных классов кластера.
// Конфигурация, не бизнес-логика: пороги приходят из config.
type SizeTiers struct {
	Small  int // count < Small  => small
	Medium int // count < Medium => medium, иначе large
}

// Tier возвращает визуальный класс для количества точек
func (t SizeTiers) Tier(count int) SizeClass {
	switch {
	case count <= 1:
		return SizeSingle
	case count < t.Small:
		return SizeSmall
	case count < t.Medium:
		return SizeMedium
	default:
		return SizeLarge
	}
}
