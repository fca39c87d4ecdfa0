package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_HasMore(t *testing.T) {
	full := make([]int, PageSize)
	page := newPage(full, 1)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.Number)

	short := make([]int, PageSize-1)
	assert.False(t, newPage(short, 3).HasMore)
	assert.False(t, newPage([]int{}, 1).HasMore)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1))
	assert.Equal(t, PageSize, pageOffset(2))
	assert.Equal(t, 4*PageSize, pageOffset(5))

	// Out-of-range page numbers clamp to the first page.
	assert.Equal(t, 0, pageOffset(0))
	assert.Equal(t, 0, pageOffset(-2))
}
