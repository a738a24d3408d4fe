package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/errors"
)

// FilterUseCase - use case для фильтрации Point Store по программам.
// Фильтрация только выбирает view: записи не копируются и не мутируются,
// порядок стора сохраняется.
type FilterUseCase struct {
	restaurantRepo repository.RestaurantRepository
	logger         *zap.Logger
}

// NewFilterUseCase - создание нового FilterUseCase
func NewFilterUseCase(restaurantRepo repository.RestaurantRepository, logger *zap.Logger) *FilterUseCase {
	return &FilterUseCase{
		restaurantRepo: restaurantRepo,
		logger:         logger,
	}
}

// NewFilterState создаёт состояние фильтра для программ стора (всё видимо)
func (uc *FilterUseCase) NewFilterState() *domain.FilterState {
	return domain.NewFilterState(uc.restaurantRepo.Programs())
}

// SetVisible переключает видимость программы в состоянии фильтра.
// Неизвестная программа - признак рассинхрона данных и конфигурации,
// поэтому не игнорируется молча: возвращается UNKNOWN_PROGRAM, состояние
// не меняется.
func (uc *FilterUseCase) SetVisible(state *domain.FilterState, program domain.Program, visible bool) error {
	if !state.SetVisible(program, visible) {
		uc.logger.Warn("Toggle for unknown program rejected", zap.String("program", string(program)))
		return errors.ErrUnknownProgram.WithDetails(map[string]interface{}{
			"program": string(program),
		})
	}
	return nil
}

// Visible возвращает видимое подмножество стора в порядке стора
func (uc *FilterUseCase) Visible(state *domain.FilterState) []domain.Restaurant {
	all := uc.restaurantRepo.All()
	result := make([]domain.Restaurant, 0, len(all))
	for _, r := range all {
		if state.IsVisible(r.Program) {
			result = append(result, r)
		}
	}
	return result
}

// VisibleByPrograms - request-scoped вариант для HTTP-слоя: names - список
// программ, которые нужно показать. Пустой список означает "все видимы".
// Любое неизвестное имя отклоняет весь запрос с UNKNOWN_PROGRAM.
func (uc *FilterUseCase) VisibleByPrograms(names []string) ([]domain.Restaurant, error) {
	state := uc.NewFilterState()

	if len(names) > 0 {
		// Явный список: сначала всё скрываем, затем включаем перечисленное
		for _, p := range state.Programs() {
			state.SetVisible(p, false)
		}
		for _, name := range names {
			program := domain.Program(strings.ToLower(strings.TrimSpace(name)))
			if err := uc.SetVisible(state, program, true); err != nil {
				return nil, err
			}
		}
	}

	return uc.Visible(state), nil
}
