package booking

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// CodeGenerator produces booking codes shaped <prefix><6 digits><3 digits>:
// the last six digits of the Unix millisecond clock followed by a random 000-999.
// Codes are not guaranteed unique; the store retries on conflict.
type CodeGenerator struct {
	prefix string
	now    func() time.Time
	intN   func(n int) int
}

func NewCodeGenerator(prefix string) *CodeGenerator {
	return &CodeGenerator{
		prefix: prefix,
		now:    time.Now,
		intN:   rand.IntN,
	}
}

func (g *CodeGenerator) Generate() string {
	return fmt.Sprintf("%s%06d%03d", g.prefix, g.now().UnixMilli()%1_000_000, g.intN(1000))
}
