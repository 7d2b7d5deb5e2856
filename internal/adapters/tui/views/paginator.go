package views

// Paginator pages through a list of items with a cursor. Replacing the items
// keeps the cursor on the item with the same key, so a reload after a toggle
// or an editor session does not move the selection.
type Paginator[T any] struct {
	items    []T
	key      func(T) string
	pageSize int
	offset   int
	cursor   int
}

// NewPaginator creates a paginator showing pageSize items per page
func NewPaginator[T any](pageSize int, key func(T) string) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator[T]{pageSize: pageSize, key: key}
}

// SetItems replaces the items. The cursor follows the selected item when it
// is still present and is clamped to the list otherwise.
func (p *Paginator[T]) SetItems(items []T) {
	prev, hadPrev := p.Selected()
	p.items = items

	if hadPrev {
		want := p.key(prev)
		for i, it := range items {
			if p.key(it) == want {
				p.cursor = i
				p.follow()
				return
			}
		}
	}

	p.cursor = min(p.cursor, len(items)-1)
	p.cursor = max(p.cursor, 0)
	p.follow()
}

// Items returns every item, not just the current page
func (p *Paginator[T]) Items() []T {
	return p.items
}

// Len returns the number of items
func (p *Paginator[T]) Len() int {
	return len(p.items)
}

// Selected returns the item under the cursor
func (p *Paginator[T]) Selected() (T, bool) {
	var zero T
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return zero, false
	}
	return p.items[p.cursor], true
}

// Cursor returns the absolute index of the cursor
func (p *Paginator[T]) Cursor() int {
	return p.cursor
}

// Top moves the cursor to the first item
func (p *Paginator[T]) Top() {
	p.cursor = 0
	p.offset = 0
}

// CursorUp moves the cursor up by one
func (p *Paginator[T]) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.follow()
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator[T]) CursorDown() bool {
	if p.cursor >= len(p.items)-1 {
		return false
	}
	p.cursor++
	p.follow()
	return true
}

// Page returns the absolute index of the first visible item and the visible items
func (p *Paginator[T]) Page() (int, []T) {
	end := min(p.offset+p.pageSize, len(p.items))
	return p.offset, p.items[p.offset:end]
}

// Pages returns the current page (1-based) and the page count
func (p *Paginator[T]) Pages() (current, total int) {
	total = max((len(p.items)+p.pageSize-1)/p.pageSize, 1)
	return p.offset/p.pageSize + 1, total
}

// NextPage moves to the first item of the next page
func (p *Paginator[T]) NextPage() bool {
	if p.offset+p.pageSize >= len(p.items) {
		return false
	}
	p.offset += p.pageSize
	p.cursor = p.offset
	return true
}

// PrevPage moves to the first item of the previous page
func (p *Paginator[T]) PrevPage() bool {
	if p.offset == 0 {
		return false
	}
	p.offset = max(p.offset-p.pageSize, 0)
	p.cursor = p.offset
	return true
}

// Reset drops the items and the cursor
func (p *Paginator[T]) Reset() {
	p.items = nil
	p.Top()
}

// follow moves the page so that it contains the cursor
func (p *Paginator[T]) follow() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.pageSize {
		p.offset = (p.cursor / p.pageSize) * p.pageSize
	}
}
