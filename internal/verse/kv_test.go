package verse

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

// memKV is an in-memory KV with switchable failures.
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
	sets    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

var errStore = errors.New("store unavailable")

func (m *memKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errStore
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errStore
	}
	m.sets++
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errStore
	}
	delete(m.data, key)
	return nil
}

// testClock is a settable clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func smallPool(n int) Pool {
	p := Pool{}
	for i := 0; i < n; i++ {
		p[General] = append(p[General], Verse{
			Text:      "verse text " + string(rune('A'+i)),
			Reference: "Ref " + string(rune('A'+i)),
			Category:  General,
		})
	}
	return p
}
