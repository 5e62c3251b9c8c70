package calendar

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// Window описывает окно выборки limit/offset.
type Window struct {
	Limit  int
	Offset int
}

// NewWindow нормализует limit/offset:
//   - отрицательный offset превращается в 0;
//   - limit больше MaxPageLimit обрезается;
//   - limit <= 0 сохраняется как есть и означает «ничего не выбирать», а не «всё».
func NewWindow(limit, offset int) Window {
	if offset < 0 {
		offset = 0
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Window{Limit: limit, Offset: offset}
}

// Empty — окно заведомо пустое, в хранилище можно не ходить.
func (w Window) Empty() bool {
	return w.Limit <= 0
}

// Page — одна страница элементов с параметрами окна.
type Page[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPage собирает страницу; nil-срез заменяется пустым, чтобы в JSON был [].
func NewPage[T any](items []T, w Window) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Limit: w.Limit, Offset: w.Offset}
}
