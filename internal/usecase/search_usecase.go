package usecase

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dining-map/internal/config"
	"github.com/dining-map/internal/domain"
)

// SearchUseCase - use case для индекса городов и поиска по нему.
// Поиск - тотальная функция: пустой результат валиден, NoMatch не ошибка.
// Чисто библиотечная подсистема: HTTP-роут для неё не поднимается,
// поиск выполняется на стороне клиента по готовому индексу.
type SearchUseCase struct {
	logger      *zap.Logger
	queryLimit  int
	browseLimit int
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(logger *zap.Logger, cfg config.SearchConfig) *SearchUseCase {
	return &SearchUseCase{
		logger:      logger,
		queryLimit:  cfg.QueryLimit,
		browseLimit: cfg.BrowseLimit,
	}
}

// BuildCityIndex группирует рестораны по непустому городу.
// Центр агрегата - среднее координат участников (детерминировано при
// неизменном сторе). Сортировка: количество по убыванию, при равенстве
// имя по возрастанию.
func (uc *SearchUseCase) BuildCityIndex(entities []domain.Restaurant) *domain.CityIndex {
	type bucket struct {
		name   string
		count  int
		sumLat float64
		sumLon float64
	}

	byCity := make(map[string]*bucket)
	var order []string

	for _, e := range entities {
		city := strings.TrimSpace(e.CityName())
		if city == "" {
			continue
		}
		key := strings.ToLower(city)
		b, ok := byCity[key]
		if !ok {
			b = &bucket{name: city}
			byCity[key] = b
			order = append(order, key)
		}
		b.count++
		b.sumLat += e.Lat
		b.sumLon += e.Lon
	}

	cities := make([]domain.CityAggregate, 0, len(order))
	for _, key := range order {
		b := byCity[key]
		cities = append(cities, domain.CityAggregate{
			Name:  b.name,
			Count: b.count,
			Center: domain.Point{
				Lat: b.sumLat / float64(b.count),
				Lon: b.sumLon / float64(b.count),
			},
		})
	}

	sort.SliceStable(cities, func(i, j int) bool {
		if cities[i].Count != cities[j].Count {
			return cities[i].Count > cities[j].Count
		}
		return cities[i].Name < cities[j].Name
	})

	uc.logger.Info("City index built", zap.Int("cities", len(cities)))

	return &domain.CityIndex{Cities: cities}
}

// Search возвращает города, подходящие под запрос.
// Пустой запрос - топ городов по количеству (browse-режим, свой лимит).
// Иначе кандидаты - регистронезависимое вхождение подстроки; ранжирование:
// точное совпадение, затем префикс, затем остальные вхождения; внутри
// уровня - количество по убыванию.
func (uc *SearchUseCase) Search(index *domain.CityIndex, query string, limit int) []domain.CityAggregate {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" {
		if limit <= 0 {
			limit = uc.browseLimit
		}
		return truncate(index.Cities, limit)
	}

	if limit <= 0 {
		limit = uc.queryLimit
	}

	type ranked struct {
		city domain.CityAggregate
		tier int // 0 exact, 1 prefix, 2 substring
	}

	var candidates []ranked
	for _, c := range index.Cities {
		name := strings.ToLower(c.Name)
		switch {
		case name == q:
			candidates = append(candidates, ranked{c, 0})
		case strings.HasPrefix(name, q):
			candidates = append(candidates, ranked{c, 1})
		case strings.Contains(name, q):
			candidates = append(candidates, ranked{c, 2})
		}
	}

	// Индекс уже упорядочен по count desc / name asc, поэтому стабильная
	// сортировка по уровню сохраняет порядок внутри уровня
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].tier < candidates[j].tier
	})

	result := make([]domain.CityAggregate, 0, len(candidates))
	for _, r := range candidates {
		result = append(result, r.city)
	}
	return truncate(result, limit)
}

func truncate(cities []domain.CityAggregate, limit int) []domain.CityAggregate {
	if len(cities) <= limit {
		result := make([]domain.CityAggregate, len(cities))
		copy(result, cities)
		return result
	}
	result := make([]domain.CityAggregate, limit)
	copy(result, cities[:limit])
	return result
}
