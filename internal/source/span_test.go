package source

import (
	"testing"
)

func TestSpan_Point(t *testing.T) {
	s := Point(3, 42)
	if s.File != 3 || s.Start != 42 || s.End != 42 {
		t.Errorf("Point() = %+v, want zero-length span at 42", s)
	}
	if !s.Empty() {
		t.Errorf("point span should be empty")
	}
	if s.Len() != 0 {
		t.Errorf("point span Len() = %d, want 0", s.Len())
	}
}

func TestSpan_Len(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected uint32
	}{
		{
			name:     "normal span",
			span:     Span{File: 1, Start: 10, End: 20},
			expected: 10,
		},
		{
			name:     "zero-length span",
			span:     Span{File: 1, Start: 10, End: 10},
			expected: 0,
		},
		{
			name:     "single byte span",
			span:     Span{File: 1, Start: 0, End: 1},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Len(); got != tt.expected {
				t.Errorf("Len() = %d, want %d", got, tt.expected)
			}
			if got := tt.span.Empty(); got != (tt.expected == 0) {
				t.Errorf("Empty() = %v with length %d", got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span changes nothing",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other starts earlier",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 5, End: 12},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "different files - returns original",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{File: 2, Start: 7, End: 19}
	if got := s.String(); got != "2:7-19" {
		t.Errorf("String() = %q, want %q", got, "2:7-19")
	}
}
