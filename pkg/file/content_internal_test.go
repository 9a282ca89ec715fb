package file

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSliceNotEq(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   int
		differ bool
	}{
		{"equal", "abc", "abc", 0, false},
		{"both_empty", "", "", 0, false},
		{"first_byte", "abc", "xbc", 0, true},
		{"middle", "abc", "abx", 2, true},
		{"a_shorter", "ab", "abc", 2, true},
		{"b_shorter", "abc", "a", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, differ := findSliceNotEq([]byte(tt.a), []byte(tt.b))
			assert.Equal(t, tt.differ, differ)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDivergence(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		expected string
		want     int
		differ   bool
	}{
		{"identical", "ABCDEFGHIJ", "ABCDEFGHIJ", 0, false},
		{"changed_tail", "ABCDEXXXXX", "ABCDEFGHIJ", 5, true},
		{"file_shorter", "ABC", "ABCDEF", 3, true},
		{"file_longer", "ABCDEF", "ABC", 3, true},
		{"empty_file", "", "ABC", 0, true},
		{"both_empty", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, differ, err := findDivergence(bytes.NewReader([]byte(tt.current)), []byte(tt.expected))
			assert.NoError(t, err)
			assert.Equal(t, tt.differ, differ)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDivergenceAcrossChunks(t *testing.T) {
	expected := bytes.Repeat([]byte("a"), chunkSize*2+10)
	current := append([]byte(nil), expected...)
	current[chunkSize+7] = 'b'

	got, differ, err := findDivergence(bytes.NewReader(current), expected)
	assert.NoError(t, err)
	assert.True(t, differ)
	assert.Equal(t, chunkSize+7, got)
}
