package interval

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "identical intervals",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			expected: true,
		},
		{
			name:   "back to back is not an overlap",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			expected: false,
		},
		{
			name:   "strict containment",
			aStart: at(10, 0), aEnd: at(14, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			expected: true,
		},
		{
			name:   "starts before and ends during",
			aStart: at(9, 30), aEnd: at(10, 30),
			bStart: at(10, 0), bEnd: at(11, 0),
			expected: true,
		},
		{
			name:   "starts during and ends after",
			aStart: at(10, 30), aEnd: at(11, 30),
			bStart: at(10, 0), bEnd: at(11, 0),
			expected: true,
		},
		{
			name:   "disjoint with gap",
			aStart: at(8, 0), aEnd: at(9, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			expected: false,
		},
		{
			name:   "one minute of shared time",
			aStart: at(10, 0), aEnd: at(11, 1),
			bStart: at(11, 0), bEnd: at(12, 0),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.expected {
				t.Errorf("Overlaps() = %v, want %v", got, tt.expected)
			}

			// The predicate is symmetric: swapping the intervals must not
			// change the answer.
			mirrored := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			if mirrored != got {
				t.Errorf("Overlaps() is not symmetric: %v vs %v", got, mirrored)
			}
		})
	}
}
