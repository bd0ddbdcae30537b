package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{5000, "$5.000"},
		{45000, "$45.000"},
		{1234567, "$1.234.567"},
		{-2500, "-$2.500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.amount), "Price(%d)", tt.amount)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2026, time.September, 18, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "18-09-2026", Date(d))
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Tortas Cuadradas", CategoryName("TC"))
	assert.Equal(t, "Productos Sin Gluten", CategoryName("PG"))

	// Unknown codes are echoed rather than rendered empty.
	assert.Equal(t, "XX", CategoryName("XX"))
}
