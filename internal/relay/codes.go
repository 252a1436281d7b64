package relay

import (
	"math/rand"
	"sync"
	"time"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeGenerator produces human-shareable room codes. The codes only need a
// low collision probability, not unpredictability; the registry retries on
// collision against its live set.
type CodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *CodeGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[g.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}
