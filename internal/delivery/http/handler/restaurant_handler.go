package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/pkg/utils"
	"github.com/dining-map/internal/pkg/validator"
	"github.com/dining-map/internal/usecase"
	"github.com/dining-map/internal/usecase/dto"
)

// RestaurantHandler — обработчик для сырых данных по видимой области карты
// (сайдбар со списком ресторанов) и списка программ для тогглов фильтра.
type RestaurantHandler struct {
	restaurantRepo repository.RestaurantRepository
	filterUC       *usecase.FilterUseCase
	logger         *zap.Logger
}

// NewRestaurantHandler создаёт новый RestaurantHandler
func NewRestaurantHandler(restaurantRepo repository.RestaurantRepository, filterUC *usecase.FilterUseCase, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantRepo: restaurantRepo,
		filterUC:       filterUC,
		logger:         logger,
	}
}

// GetPrograms — программы, представленные в сторе.
// GET /api/v1/programs
func (h *RestaurantHandler) GetPrograms(c *fiber.Ctx) error {
	programs := h.restaurantRepo.Programs()
	items := make([]string, len(programs))
	for i, p := range programs {
		items[i] = string(p)
	}
	return utils.SendSuccess(c, fiber.Map{"programs": items}, nil)
}

// GetRestaurantsInViewport — рестораны в visible bbox с пагинацией.
// GET /api/v1/viewport/restaurants?sw_lat=...&sw_lon=...&ne_lat=...&ne_lon=...&programs=amex&limit=30&offset=0
func (h *RestaurantHandler) GetRestaurantsInViewport(c *fiber.Ctx) error {
	req := &dto.ViewportRestaurantsRequest{}

	var err error
	if req.SwLat, err = strconv.ParseFloat(c.Query("sw_lat"), 64); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "sw_lat"}))
	}
	if req.SwLon, err = strconv.ParseFloat(c.Query("sw_lon"), 64); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "sw_lon"}))
	}
	if req.NeLat, err = strconv.ParseFloat(c.Query("ne_lat"), 64); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "ne_lat"}))
	}
	if req.NeLon, err = strconv.ParseFloat(c.Query("ne_lon"), 64); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "ne_lon"}))
	}
	req.Limit, _ = strconv.Atoi(c.Query("limit", "30"))
	req.Offset, _ = strconv.Atoi(c.Query("offset", "0"))
	req.Programs = splitParam(c.Query("programs", ""))

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"cause": err.Error()}))
	}

	visible, err := h.filterUC.VisibleByPrograms(req.Programs)
	if err != nil {
		return utils.SendError(c, err)
	}

	// Отбор по bbox в порядке стора
	inBounds := make([]dto.RestaurantDTO, 0)
	for _, r := range visible {
		if r.Lat < req.SwLat || r.Lat > req.NeLat || r.Lon < req.SwLon || r.Lon > req.NeLon {
			continue
		}
		inBounds = append(inBounds, dto.ConvertRestaurant(r))
	}

	total := len(inBounds)
	start := req.Offset
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	return utils.SendSuccess(c, fiber.Map{"restaurants": inBounds[start:end]}, &utils.Meta{
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}
