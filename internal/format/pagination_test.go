package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_FewPages_AllShown(t *testing.T) {
	assert.Equal(t, []string{"1"}, Pagination(1, 1))
	assert.Equal(t,
		[]string{"1", "2", "3", "4", "5", "6", "7"},
		Pagination(4, 7))
}

func TestPagination_NearFront(t *testing.T) {
	assert.Equal(t,
		[]string{"1", "2", "3", "...", "9", "10"},
		Pagination(2, 10))
}

func TestPagination_NearBack(t *testing.T) {
	assert.Equal(t,
		[]string{"1", "2", "...", "8", "9", "10"},
		Pagination(9, 10))
}

func TestPagination_Middle(t *testing.T) {
	assert.Equal(t,
		[]string{"1", "...", "4", "5", "6", "...", "10"},
		Pagination(5, 10))
}

func TestPagination_ClampsCurrent(t *testing.T) {
	assert.Equal(t, Pagination(1, 10), Pagination(-3, 10))
	assert.Equal(t, Pagination(10, 10), Pagination(99, 10))
	assert.Nil(t, Pagination(1, 0))
}
