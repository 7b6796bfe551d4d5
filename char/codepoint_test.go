package char

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharClassContains(t *testing.T) {
	cc := NewCharClass(false, []Range{{Low: 'a', High: 'c'}, {Low: '0', High: '9'}})

	assert.True(t, cc.Contains('5'))
	assert.True(t, cc.Contains('b'))
	assert.False(t, cc.Contains('z'))
}

func TestCharClassComplement(t *testing.T) {
	cc := NewCharClass(true, []Range{{Low: 'A', High: 'Z'}, {Low: '0', High: '0'}, {Low: 'a', High: 'c'}})

	assert.True(t, cc.Contains('5'))
	assert.False(t, cc.Contains('b'))
}

func TestNormalizeMergesOverlapping(t *testing.T) {
	merged := Normalize([]Range{{Low: 5, High: 10}, {Low: 1, High: 6}, {Low: 20, High: 20}})
	assert.Equal(t, []Range{{Low: 1, High: 10}, {Low: 20, High: 20}}, merged)
}

func TestNormalizeMergesAdjacent(t *testing.T) {
	merged := Normalize([]Range{{Low: 1, High: 10}, {Low: 11, High: 12}})
	assert.Equal(t, []Range{{Low: 1, High: 12}}, merged)
}

func TestSingleCodepointBoundary(t *testing.T) {
	cc := Single(0)
	assert.True(t, cc.Contains(0))
	assert.False(t, cc.Contains(1))

	max := Single(MaxUnicode)
	assert.True(t, max.Contains(MaxUnicode))
}
