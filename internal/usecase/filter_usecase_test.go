package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/usecase"
)

// MockRestaurantRepository is a mock of RestaurantRepository
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) All() []domain.Restaurant {
	args := m.Called()
	return args.Get(0).([]domain.Restaurant)
}

func (m *MockRestaurantRepository) Programs() []domain.Program {
	args := m.Called()
	return args.Get(0).([]domain.Program)
}

func (m *MockRestaurantRepository) Count() int {
	args := m.Called()
	return args.Int(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func ptrString(s string) *string { return &s }

func storeFixture() []domain.Restaurant {
	return []domain.Restaurant{
		{Name: "A", Program: domain.ProgramAmex, Lat: 40.7, Lon: -74.0, City: ptrString("New York")},
		{Name: "B", Program: domain.ProgramChase, Lat: 34.0, Lon: -118.2, City: ptrString("Los Angeles")},
		{Name: "C", Program: domain.ProgramAmex, Lat: 41.88, Lon: -87.63, City: ptrString("Chicago")},
		{Name: "D", Program: domain.ProgramChase, Lat: 40.71, Lon: -74.01, City: ptrString("New York")},
	}
}

func newMockStore() *MockRestaurantRepository {
	repo := &MockRestaurantRepository{}
	repo.On("All").Return(storeFixture())
	repo.On("Programs").Return([]domain.Program{domain.ProgramAmex, domain.ProgramChase})
	return repo
}

func TestFilterUseCase_Visible(t *testing.T) {
	logger := zap.NewNop()
	repo := newMockStore()
	uc := usecase.NewFilterUseCase(repo, logger)

	t.Run("default state shows everything in store order", func(t *testing.T) {
		state := uc.NewFilterState()
		visible := uc.Visible(state)

		assert.Len(t, visible, 4)
		assert.Equal(t, "A", visible[0].Name)
		assert.Equal(t, "D", visible[3].Name)
	})

	t.Run("toggled-off program is excluded exactly", func(t *testing.T) {
		state := uc.NewFilterState()
		err := uc.SetVisible(state, domain.ProgramChase, false)
		assert.NoError(t, err)

		visible := uc.Visible(state)
		assert.Len(t, visible, 2)
		for _, r := range visible {
			assert.Equal(t, domain.ProgramAmex, r.Program)
		}
	})

	t.Run("toggle back on restores full store", func(t *testing.T) {
		state := uc.NewFilterState()
		assert.NoError(t, uc.SetVisible(state, domain.ProgramAmex, false))
		assert.NoError(t, uc.SetVisible(state, domain.ProgramAmex, true))

		assert.Len(t, uc.Visible(state), 4)
	})
}

func TestFilterUseCase_UnknownProgram(t *testing.T) {
	logger := zap.NewNop()
	repo := newMockStore()
	uc := usecase.NewFilterUseCase(repo, logger)

	state := uc.NewFilterState()
	err := uc.SetVisible(state, domain.Program("discover"), false)

	assert.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownProgram))

	// State is left unchanged: everything still visible
	assert.Len(t, uc.Visible(state), 4)
}

func TestFilterUseCase_VisibleByPrograms(t *testing.T) {
	logger := zap.NewNop()
	repo := newMockStore()
	uc := usecase.NewFilterUseCase(repo, logger)

	t.Run("empty list means all visible", func(t *testing.T) {
		visible, err := uc.VisibleByPrograms(nil)
		assert.NoError(t, err)
		assert.Len(t, visible, 4)
	})

	t.Run("explicit list selects only named programs", func(t *testing.T) {
		visible, err := uc.VisibleByPrograms([]string{"amex"})
		assert.NoError(t, err)
		assert.Len(t, visible, 2)
		assert.Equal(t, "A", visible[0].Name)
		assert.Equal(t, "C", visible[1].Name)
	})

	t.Run("names are normalized", func(t *testing.T) {
		visible, err := uc.VisibleByPrograms([]string{" Chase "})
		assert.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("unknown name rejects the whole request", func(t *testing.T) {
		visible, err := uc.VisibleByPrograms([]string{"amex", "discover"})
		assert.Nil(t, visible)
		assert.True(t, stderrors.Is(err, errors.ErrUnknownProgram))
	})
}
