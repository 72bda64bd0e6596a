package golay

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pd0mz/go-golay/bit"
	"github.com/pd0mz/go-golay/fec"
)

// fixedFlips flips the same codeword positions on every transmission.
type fixedFlips []int

func (f fixedFlips) TransmitCount(v bit.Bits) (bit.Bits, int) {
	o := v.Clone()
	for _, p := range f {
		o[p].Flip()
	}
	return o, len(f)
}

// failingCode reports an uncorrectable error for one block index.
type failingCode struct {
	*fec.Golay_23_12
	fail  int
	calls int
}

func (c *failingCode) Decode(received bit.Bits) (bit.Bits, error) {
	defer func() { c.calls++ }()
	if c.calls == c.fail {
		return nil, fec.ErrUncorrectable
	}
	return c.Golay_23_12.Decode(received)
}

func noiselessConfig() *Config {
	cfg := DefaultConfig()
	cfg.ErrorProbability = 0
	return cfg
}

func TestPartition(t *testing.T) {
	var tests = []struct {
		Bits     int
		Blocks   int
		Leftover int
	}{
		{0, 0, 0},
		{8, 1, 4},
		{12, 1, 0},
		{16, 2, 8},
		{20, 2, 4},
		{24, 2, 0},
		{25, 3, 11},
	}
	for _, test := range tests {
		bits := make(bit.Bits, test.Bits)
		for i := range bits {
			bits[i] = 1
		}
		blocks, leftover := Partition(bits)
		require.Len(t, blocks, test.Blocks, "%d bits", test.Bits)
		assert.Equal(t, test.Leftover, leftover, "%d bits", test.Bits)
		for _, b := range blocks {
			assert.Len(t, b, BlockSize)
		}
		if test.Leftover > 0 {
			last := blocks[len(blocks)-1]
			assert.Equal(t, BlockSize-test.Leftover, last.Weight(), "%d bits", test.Bits)
		}
	}
}

func TestRunBytesNoiseless(t *testing.T) {
	p, err := NewPipeline(noiselessConfig())
	require.NoError(t, err)

	for n := 0; n < 12; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(0x5a + 17*i)
		}
		for _, mode := range []Mode{Corrected, Uncorrected} {
			res, err := p.RunBytes(data, mode)
			require.NoError(t, err)
			if !bytes.Equal(res.Bytes, data) {
				t.Fatalf("%s, %d bytes: %x != %x", mode, n, res.Bytes, data)
			}
			assert.Zero(t, res.ChannelFlips)
			assert.Zero(t, res.ResidualBits)
		}
	}
}

func TestRunBytesCorrectsThreeErrorsPerBlock(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p, err := NewPipeline(DefaultConfig(), WithChannel(fixedFlips{0, 11, 22}), WithMetrics(m))
	require.NoError(t, err)

	data := []byte("Golay!")
	res, err := p.RunBytes(data, Corrected)
	require.NoError(t, err)
	assert.Equal(t, data, res.Bytes)
	assert.Equal(t, 4, res.Blocks)
	assert.Equal(t, 12, res.ChannelFlips)
	assert.Equal(t, 8, res.CorrectedBits)
	assert.Zero(t, res.ResidualBits)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.Blocks.WithLabelValues("corrected")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.ChannelFlips))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.CorrectedBits))

	res, err = p.RunBytes(data, Uncorrected)
	require.NoError(t, err)
	assert.NotEqual(t, data, res.Bytes)
	assert.Zero(t, res.CorrectedBits)
	assert.Equal(t, 8, res.ResidualBits)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Blocks.WithLabelValues("uncorrected")))
}

func TestRunBits(t *testing.T) {
	p, err := NewPipeline(DefaultConfig(), WithChannel(fixedFlips{3, 9, 17}))
	require.NoError(t, err)

	bits, err := bit.Parse("1011001110001011010")
	require.NoError(t, err)
	res, err := p.RunBits(bits, Corrected)
	require.NoError(t, err)
	assert.Equal(t, bits, res.Bits)
	assert.Equal(t, 5, res.Leftover)

	res, err = p.RunBits(bits, Uncorrected)
	require.NoError(t, err)
	require.Len(t, res.Bits, len(bits))
	assert.Equal(t, 3, res.ResidualBits)
}

func TestUncorrectableAbort(t *testing.T) {
	cfg := noiselessConfig()
	cfg.OnUncorrectable = "abort"
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p, err := NewPipeline(cfg, WithCode(&failingCode{Golay_23_12: fec.NewGolay_23_12(), fail: 1}), WithMetrics(m))
	require.NoError(t, err)

	_, err = p.RunBytes([]byte{1, 2, 3, 4, 5, 6}, Corrected)
	require.Error(t, err)
	assert.ErrorIs(t, err, fec.ErrUncorrectable)

	var be *BlockError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Index)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uncorrectable.WithLabelValues("abort")))
}

func TestUncorrectableSubstitute(t *testing.T) {
	m := NewMetrics(nil)
	p, err := NewPipeline(noiselessConfig(), WithCode(&failingCode{Golay_23_12: fec.NewGolay_23_12(), fail: 2}), WithMetrics(m))
	require.NoError(t, err)

	data := []byte{1, 2, 3, 4, 5, 6}
	res, err := p.RunBytes(data, Corrected)
	require.NoError(t, err)
	assert.Equal(t, data, res.Bytes)
	assert.Equal(t, []int{2}, res.Substituted)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uncorrectable.WithLabelValues("substitute")))
}

func TestReassemblePadding(t *testing.T) {
	// 14 real bits: the second block carries 2 real bits and 10 padding
	// bits, which arrive as ones after a noisy channel.
	blocks := []bit.Bits{
		{1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	assert.Equal(t, []byte{0xaa, 0xcf}, Reassemble(blocks, 10, LegacyPadding))
	assert.Equal(t, []byte{0xaa, 0xcc}, Reassemble(blocks, 10, ExactPadding))

	// 20 real bits: less than a byte of padding stays in the last byte under
	// the legacy policy.
	blocks[1] = bit.Bits{1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 1}
	assert.Equal(t, []byte{0xaa, 0xcc, 0xcf}, Reassemble(blocks, 4, LegacyPadding))
	assert.Equal(t, []byte{0xaa, 0xcc, 0xc0}, Reassemble(blocks, 4, ExactPadding))
}

func TestRunBytesExactPadding(t *testing.T) {
	cfg := noiselessConfig()
	cfg.Padding = "exact"
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	for n := 1; n < 6; n++ {
		data := bytes.Repeat([]byte{0xc3}, n)
		res, err := p.RunBytes(data, Corrected)
		require.NoError(t, err)
		assert.Equal(t, data, res.Bytes)
	}
}
