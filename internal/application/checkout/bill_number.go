package checkout

import (
	"fmt"
	"sync"
	"time"
)

// BillNumberGenerator produces human-readable bill numbers of the form
// <prefix>-<yyyymmddhhmmss>-<seq>. The timestamp makes numbers sortable by
// issue time; the process-local counter keeps two bills issued within the
// same second distinct. Uniqueness is ultimately enforced by the database
// constraint, and the coordinator regenerates on collision.
type BillNumberGenerator struct {
	prefix string
	mu     sync.Mutex
	seq    int64
}

// NewBillNumberGenerator builds a generator with the configured prefix.
func NewBillNumberGenerator(prefix string) *BillNumberGenerator {
	if prefix == "" {
		prefix = "POS"
	}
	return &BillNumberGenerator{prefix: prefix}
}

// Next returns the next bill number. Safe for concurrent sessions.
func (g *BillNumberGenerator) Next(now time.Time) string {
	g.mu.Lock()
	g.seq++
	n := g.seq
	g.mu.Unlock()
	return fmt.Sprintf("%s-%s-%04d", g.prefix, now.Format("20060102150405"), n%10000)
}
