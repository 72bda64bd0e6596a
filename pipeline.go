// Package golay sends arbitrary bit streams through a simulated noisy channel
// protected by the Golay (23, 12) code.
package golay

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/op/go-logging"

	"github.com/pd0mz/go-golay/bit"
	"github.com/pd0mz/go-golay/channel"
	"github.com/pd0mz/go-golay/fec"
)

var log = logging.MustGetLogger("golay")

// BlockSize is the number of message bits per codeword.
const BlockSize = fec.Golay_23_12_DataSize

// Mode selects whether received codewords are corrected.
type Mode uint8

const (
	Corrected Mode = iota
	Uncorrected
)

var modeName = map[Mode]string{
	Corrected:   "corrected",
	Uncorrected: "uncorrected",
}

func (m Mode) String() string { return modeName[m] }

// Code is the block code used by a Pipeline. *fec.Golay_23_12 implements it.
type Code interface {
	Encode(message bit.Bits) (bit.Bits, error)
	Decode(received bit.Bits) (bit.Bits, error)
	DecodeNoCorrection(received bit.Bits) (bit.Bits, error)
}

// Channel distorts transmitted codewords. *channel.BSC implements it.
type Channel interface {
	TransmitCount(v bit.Bits) (bit.Bits, int)
}

// BlockError reports the block that failed.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("golay: block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Partition splits bits into blocks of BlockSize bits. The last block is
// padded with leftover zero bits.
func Partition(bits bit.Bits) (blocks []bit.Bits, leftover int) {
	var (
		l     = len(bits)
		count = l / BlockSize
	)
	leftover = (BlockSize - l%BlockSize) % BlockSize
	blocks = make([]bit.Bits, 0, count+1)
	for i := 0; i < count; i++ {
		blocks = append(blocks, bits[i*BlockSize:(i+1)*BlockSize].Clone())
	}
	if leftover != 0 {
		blocks = append(blocks, bit.Concat(bits[count*BlockSize:], bit.Zero(leftover)))
	}
	return blocks, leftover
}

// Result describes a pipeline run.
type Result struct {
	Bits  bit.Bits // Decoded bits, padding removed
	Bytes []byte   // Decoded bytes, only set by RunBytes

	Blocks        int
	Leftover      int   // Number of padding bits in the last block
	ChannelFlips  int   // Codeword bits flipped by the channel
	CorrectedBits int   // Message bits changed by the decoder
	ResidualBits  int   // Decoded bits that differ from the input
	Substituted   []int // Uncorrectable blocks passed through uncorrected
}

// Pipeline encodes, transmits and decodes blocks. It is not safe for
// concurrent use because its channel is not.
type Pipeline struct {
	code    Code
	channel Channel
	policy  UncorrectablePolicy
	padding PaddingPolicy
	metrics *Metrics
}

type Option func(*Pipeline)

func WithCode(code Code) Option {
	return func(p *Pipeline) { p.code = code }
}

func WithChannel(c Channel) Option {
	return func(p *Pipeline) { p.channel = c }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline builds a pipeline from cfg, DefaultConfig() if nil. A zero
// seed seeds the channel from the clock.
func NewPipeline(cfg *Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		policy:  cfg.Policy(),
		padding: cfg.PaddingPolicy(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.code == nil {
		p.code = fec.NewGolay_23_12()
	}
	if p.channel == nil {
		var rng *rand.Rand
		if cfg.Seed != 0 {
			rng = rand.New(rand.NewSource(cfg.Seed))
		}
		c, err := channel.New(cfg.ErrorProbability, rng)
		if err != nil {
			return nil, err
		}
		p.channel = c
	}
	return p, nil
}

// Channel returns the channel; for a *channel.BSC its error probability may
// be changed between runs.
func (p *Pipeline) Channel() Channel { return p.channel }

// block runs a single message block through encode, transmit and decode.
func (p *Pipeline) block(index int, message bit.Bits, mode Mode, res *Result) (bit.Bits, error) {
	codeword, err := p.code.Encode(message)
	if err != nil {
		return nil, &BlockError{Index: index, Err: err}
	}

	received, flips := p.channel.TransmitCount(codeword)
	res.ChannelFlips += flips

	var decoded bit.Bits
	switch mode {
	case Uncorrected:
		decoded, err = p.code.DecodeNoCorrection(received)
	default:
		decoded, err = p.code.Decode(received)
	}
	if errors.Is(err, fec.ErrUncorrectable) {
		p.metrics.uncorrectable(p.policy)
		if p.policy == Abort {
			return nil, &BlockError{Index: index, Err: err}
		}
		log.Warningf("block %d: %v, passing it through uncorrected", index, err)
		res.Substituted = append(res.Substituted, index)
		decoded, err = p.code.DecodeNoCorrection(received)
	}
	if err != nil {
		return nil, &BlockError{Index: index, Err: err}
	}

	corrected := distance(decoded, received[:BlockSize])
	res.CorrectedBits += corrected
	p.metrics.block(mode, flips, corrected)
	return decoded, nil
}

func (p *Pipeline) run(bits bit.Bits, mode Mode, sink func(bit.Bits)) (*Result, error) {
	blocks, leftover := Partition(bits)
	res := &Result{
		Blocks:   len(blocks),
		Leftover: leftover,
	}
	decoded := make(bit.Bits, 0, len(blocks)*BlockSize)
	for i, message := range blocks {
		d, err := p.block(i, message, mode, res)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, d...)
		if sink != nil {
			sink(d)
		}
	}
	res.Bits = decoded[:len(bits)]
	res.ResidualBits = distance(res.Bits, bits)
	log.Debugf("%s run: %d blocks, %d flips, %d corrected, %d residual",
		mode, res.Blocks, res.ChannelFlips, res.CorrectedBits, res.ResidualBits)
	return res, nil
}

// RunBits sends an arbitrary bit stream through the pipeline.
func (p *Pipeline) RunBits(bits bit.Bits, mode Mode) (*Result, error) {
	return p.run(bits, mode, nil)
}

// RunBytes sends data through the pipeline and packs the decoded bits back
// into bytes according to the padding policy.
func (p *Pipeline) RunBytes(data []byte, mode Mode) (*Result, error) {
	var r = newReassembler(len(data)*8 + BlockSize)
	res, err := p.run(bit.NewBits(data), mode, r.push)
	if err != nil {
		return nil, err
	}
	res.Bytes = r.finish(res.Leftover, p.padding)
	return res, nil
}

// Reassemble packs decoded blocks into bytes. leftover is the number of
// padding bits at the end of the last block.
func Reassemble(blocks []bit.Bits, leftover int, policy PaddingPolicy) []byte {
	var size int
	for _, b := range blocks {
		size += len(b)
	}
	r := newReassembler(size)
	for _, b := range blocks {
		r.push(b)
	}
	return r.finish(leftover, policy)
}

// reassembler collects decoded bits and emits a byte each time eight bits
// are available. The buffer is consumed through a cursor.
type reassembler struct {
	buf bit.Bits
	pos int
	out []byte
}

func newReassembler(bits int) *reassembler {
	return &reassembler{
		buf: make(bit.Bits, 0, bits),
		out: make([]byte, 0, bits/8),
	}
}

func (r *reassembler) push(bits bit.Bits) {
	r.buf = append(r.buf, bits...)
	for len(r.buf)-r.pos >= 8 {
		r.out = append(r.out, r.buf[r.pos:r.pos+8].Bytes()[0])
		r.pos += 8
	}
}

func (r *reassembler) finish(leftover int, policy PaddingPolicy) []byte {
	switch policy {
	case ExactPadding:
		if leftover > len(r.buf) {
			leftover = len(r.buf)
		}
		return r.buf[:len(r.buf)-leftover].Bytes()
	default:
		out := r.out
		if leftover >= 8 && len(out) > 0 {
			out = out[:len(out)-1]
		}
		return out
	}
}

// distance counts the positions where a and b differ.
func distance(a, b bit.Bits) int {
	var d int
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
