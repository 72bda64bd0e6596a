// Package channel simulates a memoryless binary symmetric channel.
package channel

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/op/go-logging"

	"github.com/pd0mz/go-golay/bit"
)

var log = logging.MustGetLogger("golay/channel")

var ErrInvalidProbability = errors.New("channel: error probability must be within [0, 1]")

// BSC flips each transmitted bit independently with probability p. A BSC is
// not safe for concurrent use.
type BSC struct {
	p   float64
	rng *rand.Rand
}

// New returns a channel with error probability p. If rng is nil, a time
// seeded source is used.
func New(p float64, rng *rand.Rand) (*BSC, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BSC{p: p, rng: rng}, nil
}

func validate(p float64) error {
	// Also rejects NaN.
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w, got %v", ErrInvalidProbability, p)
	}
	return nil
}

func (c *BSC) ErrorProbability() float64 { return c.p }

func (c *BSC) SetErrorProbability(p float64) error {
	if err := validate(p); err != nil {
		return err
	}
	log.Debugf("error probability %.4f -> %.4f", c.p, p)
	c.p = p
	return nil
}

// flip implements the u < p decision for a single bit.
func (c *BSC) flip() bool {
	if c.p <= 0 {
		return false
	}
	if c.p >= 1 {
		return true
	}
	return c.rng.Float64() < c.p
}

// Transmit returns a distorted copy of v.
func (c *BSC) Transmit(v bit.Bits) bit.Bits {
	o, _ := c.TransmitCount(v)
	return o
}

// TransmitCount is like Transmit and also returns the number of flipped bits.
func (c *BSC) TransmitCount(v bit.Bits) (bit.Bits, int) {
	var (
		o     = v.Clone()
		flips int
	)
	for i := range o {
		if c.flip() {
			o[i].Flip()
			flips++
		}
	}
	return o, flips
}
