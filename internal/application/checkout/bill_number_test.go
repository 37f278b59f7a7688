package checkout_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkpatel33/pos-api/internal/application/checkout"
)

func TestBillNumber_Format(t *testing.T) {
	g := checkout.NewBillNumberGenerator("POS")
	at := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)

	n := g.Next(at)
	assert.True(t, strings.HasPrefix(n, "POS-20260829143005-"), "got %s", n)
}

func TestBillNumber_DefaultPrefix(t *testing.T) {
	g := checkout.NewBillNumberGenerator("")
	n := g.Next(time.Now())
	assert.True(t, strings.HasPrefix(n, "POS-"), "got %s", n)
}

func TestBillNumber_DistinctWithinSameSecond(t *testing.T) {
	g := checkout.NewBillNumberGenerator("POS")
	at := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)

	a := g.Next(at)
	b := g.Next(at)
	assert.NotEqual(t, a, b, "two numbers in the same second must differ")
}

func TestBillNumber_ConcurrentCallersGetUniqueNumbers(t *testing.T) {
	g := checkout.NewBillNumberGenerator("POS")
	at := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)

	const callers = 50
	var wg sync.WaitGroup
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- g.Next(at)
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, callers)
	for n := range results {
		require.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
}
