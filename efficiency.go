package golay

import (
	"context"
	"errors"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/pd0mz/go-golay/bit"
	"github.com/pd0mz/go-golay/channel"
	"github.com/pd0mz/go-golay/fec"
)

// randomMessage draws a uniformly random block.
func randomMessage(rng *rand.Rand) bit.Bits {
	var m = make(bit.Bits, BlockSize)
	for i := range m {
		m[i] = bit.Bit(rng.Intn(2))
	}
	return m
}

// Efficiency returns the fraction of runs random messages that survive
// encode, transmit and decode intact in the given mode. rng draws the
// messages, the channel uses its own source.
func Efficiency(code Code, c *channel.BSC, mode Mode, runs int, rng *rand.Rand) (float64, error) {
	if runs <= 0 {
		return 0, nil
	}
	var ok int
	for i := 0; i < runs; i++ {
		message := randomMessage(rng)
		codeword, err := code.Encode(message)
		if err != nil {
			return 0, err
		}
		received := c.Transmit(codeword)
		var decoded bit.Bits
		if mode == Uncorrected {
			decoded, err = code.DecodeNoCorrection(received)
		} else {
			decoded, err = code.Decode(received)
		}
		if errors.Is(err, fec.ErrUncorrectable) {
			continue
		} else if err != nil {
			return 0, err
		}
		if decoded.Equal(message) {
			ok++
		}
	}
	return float64(ok) / float64(runs), nil
}

// SweepResult holds the block success rates for one error probability.
type SweepResult struct {
	ErrorProbability float64 `json:"error_probability"`
	Runs             int     `json:"runs"`
	Corrected        float64 `json:"corrected"`
	Uncorrected      float64 `json:"uncorrected"`
}

// Sweep estimates the efficiency for every probability in parallel. Each
// probability gets its own channel and message source derived from seed, so
// results are reproducible regardless of scheduling. workers <= 0 means no
// limit.
func Sweep(ctx context.Context, probabilities []float64, runs int, seed int64, workers int) ([]SweepResult, error) {
	var (
		code    = fec.NewGolay_23_12()
		results = make([]SweepResult, len(probabilities))
	)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range probabilities {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := SweepResult{ErrorProbability: p, Runs: runs}
			for _, mode := range []Mode{Corrected, Uncorrected} {
				base := seed + int64(i)*2 + int64(mode)
				c, err := channel.New(p, rand.New(rand.NewSource(base)))
				if err != nil {
					return err
				}
				rate, err := Efficiency(code, c, mode, runs, rand.New(rand.NewSource(^base)))
				if err != nil {
					return err
				}
				if mode == Corrected {
					res.Corrected = rate
				} else {
					res.Uncorrected = rate
				}
			}
			log.Debugf("p=%.4f corrected=%.4f uncorrected=%.4f", p, res.Corrected, res.Uncorrected)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
