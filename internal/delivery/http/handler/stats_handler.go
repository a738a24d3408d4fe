package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dining-map/internal/pkg/utils"
	"github.com/dining-map/internal/usecase"
)

// StatsHandler — обработчик сводной статистики по датасету
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создаёт новый StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics — сводка по загруженному датасету.
// GET /api/v1/stats
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statsUC.Summary(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute statistics", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}
