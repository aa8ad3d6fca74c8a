package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want int
	}{
		{"empty", "", 0},
		{"single page", "4", 1},
		{"list and range", "1,3,5-7", 4},
		{"reversed range skipped", "2-1", 0},
		{"duplicates counted once", "1,1,1-2", 2},
		{"overlapping ranges", "1-5,3-8", 8},
		{"garbage tokens skipped", "a,2,x-y,4-", 1},
		{"whitespace tolerated", " 1 , 2 - 4 ", 4},
		{"malformed mixed with valid", "5-7,oops,9", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.spec))
		})
	}
}
