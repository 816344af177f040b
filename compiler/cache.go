package compiler

import (
	"log"
	"sync"

	"github.com/ezrec/tmvm/turing"
	"github.com/ezrec/tmvm/vm"
)

type cacheKey struct {
	fingerprint [32]byte
	bias        int
}

// Cache remembers the programs compiled for each distinct machine.
// It is safe for concurrent use.
type Cache struct {
	Compiler

	mu       sync.Mutex
	programs map[cacheKey]*vm.Program
}

// DefaultCache is the cache used by the emulator.
var DefaultCache = &Cache{}

// Compile returns the program for m, compiling it on first use.
func (cache *Cache) Compile(m *turing.Machine) (prog *vm.Program, err error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	key := cacheKey{
		fingerprint: m.Fingerprint(),
		bias:        max(cache.Bias, 1),
	}

	prog, ok := cache.programs[key]
	if ok {
		if cache.Verbose {
			log.Printf("compiler: cache hit %x", key.fingerprint[:8])
		}
		return
	}

	prog, err = cache.Compiler.Compile(m)
	if err != nil {
		return
	}

	if cache.programs == nil {
		cache.programs = map[cacheKey]*vm.Program{}
	}
	cache.programs[key] = prog

	return
}

// Len returns the number of cached programs.
func (cache *Cache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	return len(cache.programs)
}
