package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs(n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(i + 1)
	}
	return ids
}

func TestPaginate_FirstPageNewestFirst(t *testing.T) {
	selected, pages := Paginate(seqIDs(10), 1, 3)

	// Newest-first: the highest ids come first
	assert.Equal(t, []uint32{10, 9, 8}, selected)
	assert.Equal(t, 10, pages.TotalItems)
	assert.Equal(t, 4, pages.TotalPages)
	assert.Equal(t, 1, pages.StartIndex)
	assert.Equal(t, 3, pages.EndIndex)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	selected, pages := Paginate(seqIDs(10), 4, 3)

	require.Len(t, selected, 1)
	assert.Equal(t, []uint32{1}, selected)
	assert.Equal(t, 4, pages.TotalPages)
	assert.Equal(t, 10, pages.StartIndex)
	assert.Equal(t, 10, pages.EndIndex)
}

func TestPaginate_OutOfRangePage(t *testing.T) {
	selected, pages := Paginate(seqIDs(10), 5, 3)

	assert.Empty(t, selected)
	assert.Equal(t, 4, pages.TotalPages)
	assert.Equal(t, 10, pages.TotalItems)
}

func TestPaginate_EmptyInput(t *testing.T) {
	selected, pages := Paginate(nil, 1, 10)

	assert.Empty(t, selected)
	assert.Equal(t, 0, pages.TotalItems)
	assert.Equal(t, 0, pages.TotalPages)
}

func TestPaginate_Arithmetic(t *testing.T) {
	// total_pages == ceil(T/per_page) and selection length ==
	// min(per_page, max(0, T-(page-1)*per_page)) for a grid of inputs
	for _, total := range []int{0, 1, 5, 10, 23, 100} {
		for _, perPage := range []int{1, 3, 7, 10, 50} {
			for _, page := range []int{1, 2, 3, 11} {
				selected, pages := Paginate(seqIDs(total), page, perPage)

				expectedPages := 0
				if total > 0 {
					expectedPages = (total + perPage - 1) / perPage
				}
				assert.Equal(t, expectedPages, pages.TotalPages,
					"total=%d per_page=%d", total, perPage)

				expectedLen := total - (page-1)*perPage
				if expectedLen < 0 {
					expectedLen = 0
				}
				if expectedLen > perPage {
					expectedLen = perPage
				}
				assert.Len(t, selected, expectedLen,
					"total=%d page=%d per_page=%d", total, page, perPage)
			}
		}
	}
}

func TestPaginate_SelectionIsContiguousDescending(t *testing.T) {
	selected, _ := Paginate(seqIDs(10), 2, 3)
	assert.Equal(t, []uint32{7, 6, 5}, selected)
}
