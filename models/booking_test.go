package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNights(t *testing.T) {
	r := DateRange{From: day(1), To: day(8)}
	require.Equal(t, 7, r.Nights())
}

func TestValidateRejectsEmptyAndInvertedRanges(t *testing.T) {
	require.ErrorIs(t, DateRange{From: day(3), To: day(3)}.Validate(), ErrInvalidRange)
	require.ErrorIs(t, DateRange{From: day(5), To: day(2)}.Validate(), ErrInvalidRange)
	require.NoError(t, DateRange{From: day(2), To: day(5)}.Validate())
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a := DateRange{From: day(5), To: day(10)}
	b := DateRange{From: day(8), To: day(12)}
	require.True(t, a.Overlaps(b))
	require.True(t, b.Overlaps(a))
}

func TestAdjacentRangesDoNotOverlap(t *testing.T) {
	a := DateRange{From: day(5), To: day(10)}
	c := DateRange{From: day(10), To: day(15)}
	require.False(t, a.Overlaps(c))
	require.False(t, c.Overlaps(a))
}

func TestContainedRangeOverlaps(t *testing.T) {
	outer := DateRange{From: day(1), To: day(20)}
	inner := DateRange{From: day(5), To: day(6)}
	require.True(t, outer.Overlaps(inner))
	require.True(t, inner.Overlaps(outer))
}

func TestDisjointRangesDoNotOverlap(t *testing.T) {
	a := DateRange{From: day(1), To: day(3)}
	b := DateRange{From: day(7), To: day(9)}
	require.False(t, a.Overlaps(b))
	require.False(t, b.Overlaps(a))
}
