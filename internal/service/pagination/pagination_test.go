package pagination

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PaginationUnitSuite struct {
	suite.Suite
}

func pages(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		if it.Ellipsis {
			out[i] = 0
			continue
		}
		out[i] = it.Page
	}
	return out
}

func (s *PaginationUnitSuite) TestTotalPages(t provider.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 31, TotalPages(31, 1))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func (s *PaginationUnitSuite) TestWindow(t provider.T) {
	t.Run("Should list every page when they fit", func(t provider.T) {
		c := Window(30, 10, 1)
		assert.Equal(t, []int{1, 2, 3}, pages(c.Items))
		assert.True(t, c.Items[0].Active)
		assert.True(t, c.PrevDisabled)
		assert.False(t, c.NextDisabled)
	})

	t.Run("Should collapse gaps into ellipses", func(t provider.T) {
		tt := []struct {
			current int
			want    []int
		}{
			{1, []int{1, 2, 0, 10}},
			{3, []int{1, 2, 3, 4, 0, 10}},
			{5, []int{1, 0, 4, 5, 6, 0, 10}},
			{8, []int{1, 0, 7, 8, 9, 10}},
			{10, []int{1, 0, 9, 10}},
		}
		for _, tc := range tt {
			c := Window(100, 10, tc.current)
			assert.Equal(t, tc.want, pages(c.Items), "current=%d", tc.current)
			assert.Equal(t, tc.current == 10, c.NextDisabled)
		}
	})

	t.Run("Should disable navigation without items", func(t provider.T) {
		c := Window(0, 10, 1)
		assert.Empty(t, c.Items)
		assert.True(t, c.PrevDisabled)
		assert.True(t, c.NextDisabled)
	})

	t.Run("Should clamp the current page", func(t provider.T) {
		c := Window(20, 10, 7)
		assert.Equal(t, 2, c.CurrentPage)
		assert.True(t, c.Items[1].Active)
	})
}

func (s *PaginationUnitSuite) TestPager(t provider.T) {
	t.Run("Should reset to the first page when the page size changes", func(t provider.T) {
		var calls [][2]int
		p := NewPager(10, WithOnPageChange(func(page, size int) {
			calls = append(calls, [2]int{page, size})
		}))
		p.SetTotalItems(42)
		require.Equal(t, 5, p.TotalPages())

		assert.True(t, p.Next())
		assert.Equal(t, 2, p.Page())

		require.NoError(t, p.SetPageSize(5))
		assert.Equal(t, 1, p.Page())
		assert.Equal(t, 9, p.TotalPages())
		assert.Equal(t, [][2]int{{2, 10}, {1, 5}}, calls)
	})

	t.Run("Should reject sizes outside the candidate set", func(t provider.T) {
		p := NewPager(10)
		err := p.SetPageSize(7)
		assert.ErrorIs(t, err, ErrUnsupportedPageSize)
		assert.Equal(t, 10, p.PageSize())
	})

	t.Run("Should stop at the edges", func(t provider.T) {
		p := NewPager(5)
		p.SetTotalItems(12)
		assert.False(t, p.Prev())
		assert.True(t, p.Goto(3))
		assert.False(t, p.Next())
		assert.False(t, p.Goto(4))
		assert.True(t, p.Prev())
		assert.Equal(t, 2, p.Page())
	})

	t.Run("Should fall back to the first candidate size", func(t provider.T) {
		p := NewPager(12, WithPageSizes(5, 10))
		assert.Equal(t, 5, p.PageSize())
		assert.Equal(t, []int{5, 10}, p.PageSizes())
	})

	t.Run("Should rewind when the total changes", func(t provider.T) {
		p := NewPager(1)
		p.SetTotalItems(3)
		p.Goto(3)
		p.SetTotalItems(2)
		assert.Equal(t, 1, p.Page())
	})
}

func TestPaginationUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(PaginationUnitSuite))
}
