package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
)

func TestIndexAt(t *testing.T) {
	l := entity.Layout{LeftPadding: 40, ChartWidth: 300, ChartHeight: 100}

	tests := []struct {
		name          string
		x             float64
		n             int
		expectedIndex int
		expectedOK    bool
	}{
		{name: "first point", x: 40, n: 4, expectedIndex: 0, expectedOK: true},
		{name: "just before half", x: 89.9, n: 4, expectedIndex: 0, expectedOK: true},
		{name: "half rounds up", x: 90, n: 4, expectedIndex: 1, expectedOK: true},
		{name: "last point", x: 340, n: 4, expectedIndex: 3, expectedOK: true},
		{name: "past last within half spacing", x: 389, n: 4, expectedIndex: 3, expectedOK: true},
		{name: "past last beyond half spacing", x: 390, n: 4, expectedOK: false},
		{name: "left of first beyond half spacing", x: -11, n: 4, expectedOK: false},
		{name: "single point", x: 40, n: 1, expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := IndexAt(tt.x, l, tt.n)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedIndex, index)
			}
		})
	}
}

func TestIndexAt_NoRoom(t *testing.T) {
	_, ok := IndexAt(50, entity.Layout{LeftPadding: 40, ChartWidth: -10}, 4)
	assert.False(t, ok)
}

func TestPointerTracker(t *testing.T) {
	l := entity.Layout{LeftPadding: 40, ChartWidth: 300, ChartHeight: 100}
	var tr PointerTracker

	assert.False(t, tr.Leave(), "nothing to clear yet")
	assert.False(t, tr.Move(1000, l, 4), "out of range with no hover needs no redraw")

	assert.True(t, tr.Move(140, l, 4))
	assert.Equal(t, entity.HoverState{Index: 1, Active: true}, tr.Hover())

	assert.True(t, tr.Move(140, l, 4), "every accepted move redraws")
	assert.Equal(t, entity.HoverState{Index: 1, Active: true}, tr.Hover())

	assert.True(t, tr.Move(1000, l, 4), "leaving the range clears the hover")
	assert.Equal(t, entity.HoverState{}, tr.Hover())

	tr.Move(340, l, 4)
	assert.True(t, tr.Leave())
	assert.False(t, tr.Hover().Active)
}
