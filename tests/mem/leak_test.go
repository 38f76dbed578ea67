//go:build test

package mem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/dictionary"
	"github.com/bastiangx/approxdict/pkg/trie"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var syllables = []string{"ab", "co", "de", "hel", "in", "lo", "pro", "ter", "th", "wor"}

var testQueries = []approx.Query{
	{Word: "hello", MaxDistance: 1},
	{Word: "wrold", MaxDistance: 2},
	{Word: "porgram", MaxDistance: 2},
	{Word: "ther", MaxDistance: 1},
	{Word: "computer", MaxDistance: 3},
	{Word: "interlode", MaxDistance: 2},
	{Word: "a", MaxDistance: 0},
	{Word: "", MaxDistance: 2},
}

// newSearcher compiles every three syllable word into an in-memory trie.
func newSearcher(t *testing.T) *approx.Searcher {
	t.Helper()

	var words strings.Builder
	freq := 1
	for _, a := range syllables {
		for _, b := range syllables {
			for _, c := range syllables {
				fmt.Fprintf(&words, "%s%s%s\t%d\n", a, b, c, freq)
				freq = freq*7%1000 + 1
			}
		}
	}

	var buf bytes.Buffer
	if _, err := dictionary.Compile(strings.NewReader(words.String()), &buf, dictionary.CompileOptions{}); err != nil {
		t.Fatalf("dictionary compile failed: %v", err)
	}
	m, err := trie.OpenBytes(buf.Bytes(), trie.OpenOptions{Verify: true})
	if err != nil {
		t.Fatalf("dictionary open failed: %v", err)
	}
	return approx.NewSearcher(m.View())
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 400},
		{workers: 2, iterationsPerWorker: 200},
		{workers: 4, iterationsPerWorker: 100},
		{workers: 8, iterationsPerWorker: 50},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func TestMemoryLeakBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping batch memory test in short mode")
	}

	s := newSearcher(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < 200; i++ {
		if _, err := s.SearchBatch(context.Background(), testQueries); err != nil {
			t.Fatalf("batch search failed: %v", err)
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	t.Logf("batches=200 mem_delta=%d bytes goroutine_delta=%d", memDelta, goroutineDelta)

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	s := newSearcher(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, q := range testQueries {
			if _, err := s.Search(q.Word, q.MaxDistance); err != nil {
				t.Fatalf("search %q failed: %v", q.Word, err)
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(testQueries)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	memFile, err := os.CreateTemp(t.TempDir(), "concurrent_memory-*.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer memFile.Close()

	s := newSearcher(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, q := range testQueries {
					if _, err := s.Search(q.Word, q.MaxDistance); err != nil {
						t.Errorf("search %q failed: %v", q.Word, err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	totalOps := workers * iterationsPerWorker * len(testQueries)
	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
