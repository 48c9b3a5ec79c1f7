package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	_, size = NormalizePage(2, 500)
	assert.Equal(t, MaxPageSize, size)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 10, 25)
	assert.EqualValues(t, 3, p.TotalPages)
	assert.True(t, p.HasMore)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)

	last := NewPagination(3, 10, 5, 25)
	assert.False(t, last.HasMore)
	assert.Equal(t, 25, last.To)

	empty := NewPagination(1, 10, 0, 0)
	assert.EqualValues(t, 0, empty.TotalPages)
	assert.Equal(t, 0, empty.From)
	assert.False(t, empty.HasMore)
}
