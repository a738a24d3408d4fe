package domain

// FilterState - отображение программы в флаг видимости.
// Создаётся из набора программ стора, по умолчанию всё видимо.
// Мутируется только явным действием пользователя (SetVisible).
type FilterState struct {
	visible map[Program]bool
}

// NewFilterState создаёт состояние фильтра, где каждая программа видима
func NewFilterState(programs []Program) *FilterState {
	visible := make(map[Program]bool, len(programs))
	for _, p := range programs {
		visible[p] = true
	}
	return &FilterState{visible: visible}
}

// Knows сообщает, известна ли программа состоянию фильтра
func (s *FilterState) Knows(p Program) bool {
	_, ok := s.visible[p]
	return ok
}

// SetVisible переключает видимость программы.
// Неизвестная программа - ответственность вызывающего (use case
// возвращает UNKNOWN_PROGRAM), здесь это no-op с false.
func (s *FilterState) SetVisible(p Program, v bool) bool {
	if !s.Knows(p) {
		return false
	}
	s.visible[p] = v
	return true
}

// IsVisible возвращает флаг видимости; отсутствующая запись трактуется
// как видимая (инвариант "missing entries default to visible")
func (s *FilterState) IsVisible(p Program) bool {
	v, ok := s.visible[p]
	if !ok {
		return true
	}
	return v
}

// Programs возвращает все программы, известные состоянию фильтра
func (s *FilterState) Programs() []Program {
	result := make([]Program, 0, len(s.visible))
	for p := range s.visible {
		result = append(result, p)
	}
	return result
}
