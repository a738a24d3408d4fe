package handler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/pkg/utils"
	"github.com/dining-map/internal/pkg/validator"
	"github.com/dining-map/internal/usecase"
	"github.com/dining-map/internal/usecase/dto"
)

// ClusterHandler - обработчик кластеров маркеров для вьюпорта карты
type ClusterHandler struct {
	filterUC  *usecase.FilterUseCase
	clusterUC *usecase.ClusterUseCase
	logger    *zap.Logger
}

// NewClusterHandler создаёт новый ClusterHandler
func NewClusterHandler(filterUC *usecase.FilterUseCase, clusterUC *usecase.ClusterUseCase, logger *zap.Logger) *ClusterHandler {
	return &ClusterHandler{
		filterUC:  filterUC,
		clusterUC: clusterUC,
		logger:    logger,
	}
}

// GetClusters — кластеры для текущего вьюпорта и фильтра программ.
// GET /api/v1/clusters?sw_lat=...&sw_lon=...&ne_lat=...&ne_lon=...&zoom=12&programs=amex,chase
func (h *ClusterHandler) GetClusters(c *fiber.Ctx) error {
	nodes, err := h.clustersForRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.ConvertClusterNodes(nodes)
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

// GetClustersGeoJSON — те же кластеры как GeoJSON FeatureCollection.
// GET /api/v1/clusters.geojson?sw_lat=...&ne_lat=...&zoom=12&programs=amex
func (h *ClusterHandler) GetClustersGeoJSON(c *fiber.Ctx) error {
	nodes, err := h.clustersForRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(dto.ToGeoJSON(nodes))
}

func (h *ClusterHandler) clustersForRequest(c *fiber.Ctx) ([]domain.ClusterNode, error) {
	req, err := parseClustersRequest(c)
	if err != nil {
		return nil, err
	}

	visible, err := h.filterUC.VisibleByPrograms(req.Programs)
	if err != nil {
		return nil, err
	}

	viewport := domain.Viewport{
		Center: domain.Point{
			Lat: (req.SwLat + req.NeLat) / 2,
			Lon: (req.SwLon + req.NeLon) / 2,
		},
		Zoom: req.Zoom,
		Bounds: domain.BoundingBox{
			MinLat: req.SwLat,
			MinLon: req.SwLon,
			MaxLat: req.NeLat,
			MaxLon: req.NeLon,
		},
	}

	nodes, err := h.clusterUC.ClustersCached(c.Context(), visible, viewport, filterKey(req.Programs))
	if err != nil {
		h.logger.Warn("Cluster computation rejected", zap.Error(err))
		return nil, err
	}
	return nodes, nil
}

func parseClustersRequest(c *fiber.Ctx) (*dto.ClustersRequest, error) {
	req := &dto.ClustersRequest{}

	var err error
	if req.SwLat, err = strconv.ParseFloat(c.Query("sw_lat"), 64); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "sw_lat"})
	}
	if req.SwLon, err = strconv.ParseFloat(c.Query("sw_lon"), 64); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "sw_lon"})
	}
	if req.NeLat, err = strconv.ParseFloat(c.Query("ne_lat"), 64); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "ne_lat"})
	}
	if req.NeLon, err = strconv.ParseFloat(c.Query("ne_lon"), 64); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "ne_lon"})
	}
	if req.Zoom, err = strconv.ParseFloat(c.Query("zoom"), 64); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "zoom"})
	}
	req.Programs = splitParam(c.Query("programs", ""))

	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"cause": err.Error()})
	}

	return req, nil
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// filterKey - каноничное представление фильтра для ключа кеша
func filterKey(programs []string) string {
	if len(programs) == 0 {
		return "all"
	}
	sorted := make([]string, len(programs))
	for i, p := range programs {
		sorted[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
