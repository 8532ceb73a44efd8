package verse

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sadopc/vigil/internal/prayer"
)

// KV is the string store the engines persist into. Get reports ok=false for
// a missing key.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

type Option func(*settings)

type settings struct {
	now  func() time.Time
	rng  *rand.Rand
	pool Pool
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithRand sets the randomness source. The engine serializes its own use of
// r, but r must not be shared with other engines.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithPool replaces DefaultPool.
func WithPool(p Pool) Option {
	return func(s *settings) { s.pool = p }
}

func newSettings(opts []Option) settings {
	s := settings{
		now:  time.Now,
		pool: DefaultPool,
	}
	for _, o := range opts {
		o(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// picker draws uniformly random subsets.
type picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// pick shuffles a copy of vs and returns its first n elements, or fewer when
// vs is shorter.
func (p *picker) pick(vs []Verse, n int) []Verse {
	shuffled := make([]Verse, len(vs))
	copy(shuffled, vs)

	p.mu.Lock()
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	p.mu.Unlock()

	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}

func hourOf(scheduledTime string) (int, bool) {
	h, _, err := prayer.ParseTime(scheduledTime)
	if err != nil {
		return 0, false
	}
	return h, true
}
