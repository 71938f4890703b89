package ids

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Generator produces record identifiers. Locally generated IDs must be
// indistinguishable in shape from server-issued ones, which are decimal
// strings of up-to-53-bit integers.
type Generator interface {
	New() string
}

// Random is the default Generator.
type Random struct{}

// NewRandom returns the default generator.
func NewRandom() *Random { return &Random{} }

const mask53 = (1 << 53) - 1

// New returns a random 53-bit decimal string.
func (r *Random) New() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano()&mask53)
	}
	n := binary.BigEndian.Uint64(buf[:]) & mask53
	return strconv.FormatUint(n, 10)
}

// NewJobID returns a UUID string for queue and request bookkeeping.
func NewJobID() string { return uuid.NewString() }

// Sequence is a deterministic Generator for tests.
type Sequence struct {
	next int64
}

// NewSequence starts a deterministic generator at the given value.
func NewSequence(start int64) *Sequence { return &Sequence{next: start} }

// New returns consecutive decimal IDs.
func (s *Sequence) New() string {
	id := s.next
	s.next++
	return strconv.FormatInt(id, 10)
}
