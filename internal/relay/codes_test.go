package relay

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	g := NewCodeGenerator()
	format := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 1000; i++ {
		assert.Regexp(t, format, g.Generate())
	}
}

func TestGenerateSpread(t *testing.T) {
	g := NewCodeGenerator()
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		seen[g.Generate()] = struct{}{}
	}
	// 36^6 combinations; 1000 draws colliding would mean a broken generator.
	assert.Greater(t, len(seen), 990)
}
