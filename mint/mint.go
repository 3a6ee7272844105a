package mint

import (
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Minter creates a concrete name for a logical name. Every call is expected to
// return a different string.
type Minter interface {
	Mint(logical string) string
}

// MinterFunc lets ordinary functions act as Minters.
type MinterFunc func(string) string

// Mint calls f(logical).
func (f MinterFunc) Mint(logical string) string {
	return f(logical)
}

// --- Counter ---------------------------------------------------------------

type counter struct {
	next uint64
}

// Counter returns a minter appending a monotonically increasing number to
// logical names. The first name minted carries suffix start.
// The counter is shared between all logical names.
func Counter(start uint64) Minter {
	return &counter{next: start}
}

func (c *counter) Mint(logical string) string {
	n := atomic.AddUint64(&c.next, 1) - 1
	name := logical + "-" + strconv.FormatUint(n, 10)
	tracer().Debugf("minted %s", name)
	return name
}

// --- Random digits ---------------------------------------------------------

type randomDigits struct {
	mx  sync.Mutex
	rnd *rand.Rand
}

// RandomDigits returns a minter appending 1 to 5 random digits to logical names.
// Collisions are possible and have to be detected by the caller.
// If r is nil, a time-seeded source is used.
func RandomDigits(r *rand.Rand) Minter {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randomDigits{rnd: r}
}

func (rd *randomDigits) Mint(logical string) string {
	rd.mx.Lock()
	n := rd.rnd.Intn(100000)
	rd.mx.Unlock()
	name := logical + "-" + strconv.Itoa(n)
	tracer().Debugf("minted %s", name)
	return name
}

// --- UUID ------------------------------------------------------------------

// UUID returns a minter appending the first 8 hex digits of a random (version 4)
// UUID to logical names.
func UUID() Minter {
	return MinterFunc(func(logical string) string {
		id := uuid.New().String()
		name := logical + "-" + id[:8]
		tracer().Debugf("minted %s", name)
		return name
	})
}

// ByName returns a minter for a strategy name, as used in configuration files.
// Known names are "counter", "random" and "uuid". For an empty or unknown
// name a counter starting at start is returned and ok is false for unknown names.
func ByName(name string, start uint64) (m Minter, ok bool) {
	switch name {
	case "", "counter":
		return Counter(start), true
	case "random":
		return RandomDigits(nil), true
	case "uuid":
		return UUID(), true
	}
	tracer().Infof("unknown minting strategy '%s', using counter", name)
	return Counter(start), false
}
