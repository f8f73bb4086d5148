package pagination

import (
	"errors"
	"fmt"
	"slices"
)

const MaxVisibleButtons = 5

var (
	DefaultPageSizes = []int{1, 5, 10, 15}

	ErrUnsupportedPageSize = errors.New("unsupported page size")
)

const DefaultPageSize = 10

func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

type Item struct {
	Page     int
	Ellipsis bool
	Active   bool
}

type Control struct {
	CurrentPage  int
	PageSize     int
	TotalPages   int
	TotalItems   int
	PrevDisabled bool
	NextDisabled bool
	Items        []Item
}

// Window lays out the numbered buttons around the current page. Once the
// page count exceeds MaxVisibleButtons the first and last pages stay
// visible and the gaps collapse into ellipses.
func Window(totalItems, pageSize, current int) Control {
	total := TotalPages(totalItems, pageSize)
	c := Control{
		CurrentPage: current,
		PageSize:    pageSize,
		TotalPages:  total,
		TotalItems:  totalItems,
	}
	if total == 0 {
		c.PrevDisabled = true
		c.NextDisabled = true
		return c
	}

	current = max(1, min(current, total))
	c.CurrentPage = current
	c.PrevDisabled = current == 1
	c.NextDisabled = current == total

	page := func(p int) Item {
		return Item{Page: p, Active: p == current}
	}

	if total <= MaxVisibleButtons {
		for p := 1; p <= total; p++ {
			c.Items = append(c.Items, page(p))
		}
		return c
	}

	c.Items = append(c.Items, page(1))
	if current > 3 {
		c.Items = append(c.Items, Item{Ellipsis: true})
	}
	start := max(2, current-1)
	end := min(total-1, current+1)
	for p := start; p <= end; p++ {
		c.Items = append(c.Items, page(p))
	}
	if current < total-2 {
		c.Items = append(c.Items, Item{Ellipsis: true})
	}
	c.Items = append(c.Items, page(total))

	return c
}

type PageChangeFunc func(page, pageSize int)

// Pager keeps the page position of a list view.
type Pager struct {
	sizes      []int
	pageSize   int
	current    int
	totalItems int
	onChange   PageChangeFunc
}

type PagerOption func(*Pager)

func WithPageSizes(sizes ...int) PagerOption {
	return func(p *Pager) {
		if len(sizes) > 0 {
			p.sizes = slices.Clone(sizes)
		}
	}
}

func WithOnPageChange(fn PageChangeFunc) PagerOption {
	return func(p *Pager) {
		p.onChange = fn
	}
}

func NewPager(pageSize int, opts ...PagerOption) *Pager {
	p := &Pager{
		sizes:   slices.Clone(DefaultPageSizes),
		current: 1,
	}
	for _, opt := range opts {
		opt(p)
	}

	if slices.Contains(p.sizes, pageSize) {
		p.pageSize = pageSize
	} else {
		p.pageSize = p.sizes[0]
	}
	return p
}

func (p *Pager) Page() int { return p.current }

func (p *Pager) PageSize() int { return p.pageSize }

func (p *Pager) PageSizes() []int { return slices.Clone(p.sizes) }

func (p *Pager) TotalPages() int { return TotalPages(p.totalItems, p.pageSize) }

func (p *Pager) Control() Control {
	return Window(p.totalItems, p.pageSize, p.current)
}

// SetTotalItems is called after every refilter and rewinds to the first page.
func (p *Pager) SetTotalItems(total int) {
	p.totalItems = max(0, total)
	p.current = 1
}

func (p *Pager) SetPageSize(size int) error {
	if !slices.Contains(p.sizes, size) {
		return fmt.Errorf("%w: %d", ErrUnsupportedPageSize, size)
	}
	p.pageSize = size
	p.current = 1
	p.notify()
	return nil
}

func (p *Pager) Next() bool {
	if p.current >= p.TotalPages() {
		return false
	}
	p.current++
	p.notify()
	return true
}

func (p *Pager) Prev() bool {
	if p.current <= 1 {
		return false
	}
	p.current--
	p.notify()
	return true
}

func (p *Pager) Goto(page int) bool {
	if page < 1 || page > p.TotalPages() {
		return false
	}
	p.current = page
	p.notify()
	return true
}

func (p *Pager) notify() {
	if p.onChange != nil {
		p.onChange(p.current, p.pageSize)
	}
}
