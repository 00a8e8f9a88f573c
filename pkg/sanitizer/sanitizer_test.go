package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hustwenchao/bookshelf/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "admin@example.com", sanitizer.NormalizeEmail("  Admin@Example.COM "))
	assert.Equal(t, "", sanitizer.NormalizeEmail("   "))
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  三体  ":          "三体",
		"The\x00 Hobbit\n": "The Hobbit",
		"a  b":             "a  b",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.CleanText(in), "input %q", in)
	}
}

func TestTrimAll(t *testing.T) {
	t.Parallel()

	a, b := " x ", "\ty\t"
	sanitizer.TrimAll(&a, nil, &b)
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}
