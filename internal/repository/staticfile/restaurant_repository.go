package staticfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/pkg/utils"
	"github.com/dining-map/internal/pkg/validator"
)

// record - запись из сгенерированного датасета (выход ingestion-скрипта)
type record struct {
	Name    string  `json:"name" validate:"required"`
	Program string  `json:"program" validate:"required"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Website *string `json:"website,omitempty"`
}

// restaurantRepository держит Point Store в памяти.
// Иммутабелен после Load: All отдаёт копию слайса заголовка, записи
// никогда не мутируются.
type restaurantRepository struct {
	restaurants []domain.Restaurant
	programs    []domain.Program
	logger      *zap.Logger
}

// Load читает датасет из JSON-файла и строит Point Store.
// Записи с невалидными координатами или без обязательных полей
// отбрасываются (количество логируется); структурная ошибка файла
// возвращает DATA_LOAD_FAILED.
func Load(path string, logger *zap.Logger) (repository.RestaurantRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read dataset file", zap.String("path", path), zap.Error(err))
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"path":  path,
			"cause": err.Error(),
		})
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Error("Failed to parse dataset file", zap.String("path", path), zap.Error(err))
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"path":  path,
			"cause": err.Error(),
		})
	}

	restaurants := make([]domain.Restaurant, 0, len(records))
	seenPrograms := make(map[domain.Program]struct{})
	var programs []domain.Program
	dropped := 0

	for i, rec := range records {
		if err := validator.Validate(rec); err != nil {
			logger.Debug("Dropping invalid record", zap.Int("index", i), zap.Error(err))
			dropped++
			continue
		}
		// Инвариант стора: запись без валидных координат не попадает внутрь
		if !utils.ValidateCoordinates(rec.Lat, rec.Lon) {
			logger.Debug("Dropping record with invalid coordinates",
				zap.Int("index", i),
				zap.String("name", rec.Name),
				zap.Float64("lat", rec.Lat),
				zap.Float64("lon", rec.Lon),
			)
			dropped++
			continue
		}

		program := domain.Program(strings.ToLower(strings.TrimSpace(rec.Program)))
		if _, ok := seenPrograms[program]; !ok {
			seenPrograms[program] = struct{}{}
			programs = append(programs, program)
		}

		restaurants = append(restaurants, domain.Restaurant{
			Name:       rec.Name,
			Program:    program,
			Lat:        rec.Lat,
			Lon:        rec.Lon,
			Address:    rec.Address,
			City:       rec.City,
			State:      rec.State,
			BookingURL: rec.Website,
		})
	}

	if len(restaurants) == 0 {
		logger.Error("Dataset contains no valid records",
			zap.String("path", path),
			zap.Int("total", len(records)),
		)
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"path":  path,
			"cause": fmt.Sprintf("no valid records out of %d", len(records)),
		})
	}

	logger.Info("Dataset loaded",
		zap.String("path", path),
		zap.Int("loaded", len(restaurants)),
		zap.Int("dropped", dropped),
		zap.Int("programs", len(programs)),
	)

	return &restaurantRepository{
		restaurants: restaurants,
		programs:    programs,
		logger:      logger,
	}, nil
}

func (r *restaurantRepository) All() []domain.Restaurant {
	return r.restaurants
}

func (r *restaurantRepository) Programs() []domain.Program {
	return r.programs
}

func (r *restaurantRepository) Count() int {
	return len(r.restaurants)
}
