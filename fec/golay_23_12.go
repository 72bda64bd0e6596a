// Package fec implements the binary Golay (23, 12, 7) code and its extended
// (24, 12, 8) form.
package fec

import (
	"errors"
	"fmt"

	"github.com/pd0mz/go-golay/bit"
)

const (
	Golay_23_12_DataSize     = 12
	Golay_23_12_CodewordSize = 23
	Golay_24_12_CodewordSize = 24
)

var (
	ErrInvalidLength = errors.New("fec/golay_23_12: invalid length")
	ErrUncorrectable = errors.New("fec/golay_23_12: uncorrectable error")
)

var (
	// Golay structure matrix B. Rows 0-10 are left cyclic shifts of the
	// quadratic residue pattern mod 11 with a trailing 1. B is symmetric and
	// B·B = I.
	golay_23_12_B = bit.MustMatrix(
		"110111000101",
		"101110001011",
		"011100010111",
		"111000101101",
		"110001011011",
		"100010110111",
		"000101101111",
		"001011011101",
		"010110111001",
		"101101110001",
		"011011100011",
		"111111111110",
	)

	// B with its last column removed, the parity half of the 23 bit code.
	golay_23_12_B11 = func() bit.Matrix {
		m := make(bit.Matrix, golay_23_12_B.Rows())
		for i, row := range golay_23_12_B {
			m[i] = row[:11].Clone()
		}
		return m
	}()
)

// Golay_23_12 holds the generator and parity check matrices of the code.
// A value is immutable after construction and may be shared.
type Golay_23_12 struct {
	i   bit.Matrix
	g   bit.Matrix // 12 x 23, [I | B11]
	g24 bit.Matrix // 12 x 24, [I | B]
	h   bit.Matrix // 24 x 12, [I ; B]
}

func NewGolay_23_12() *Golay_23_12 {
	var (
		c   = &Golay_23_12{i: bit.Identity(Golay_23_12_DataSize)}
		err error
	)
	if c.g, err = c.i.Join(golay_23_12_B11); err != nil {
		panic(err)
	}
	if c.g24, err = c.i.Join(golay_23_12_B); err != nil {
		panic(err)
	}
	if c.h, err = c.i.VerticalJoin(golay_23_12_B); err != nil {
		panic(err)
	}
	return c
}

// Generator returns a copy of the 12 x 23 generator matrix.
func (c *Golay_23_12) Generator() bit.Matrix {
	g, _ := bit.NewMatrix(c.g...)
	return g
}

// ParityCheck returns a copy of the 24 x 12 parity check matrix.
func (c *Golay_23_12) ParityCheck() bit.Matrix {
	h, _ := bit.NewMatrix(c.h...)
	return h
}

// Encode a 12 bit message into a 23 bit codeword.
func (c *Golay_23_12) Encode(message bit.Bits) (bit.Bits, error) {
	if len(message) != Golay_23_12_DataSize {
		return nil, fmt.Errorf("%w: encode expects %d bits, got %d", ErrInvalidLength, Golay_23_12_DataSize, len(message))
	}
	return encode(message, c.g)
}

// EncodeExtended encodes a 12 bit message into a 24 bit extended codeword.
func (c *Golay_23_12) EncodeExtended(message bit.Bits) (bit.Bits, error) {
	if len(message) != Golay_23_12_DataSize {
		return nil, fmt.Errorf("%w: encode expects %d bits, got %d", ErrInvalidLength, Golay_23_12_DataSize, len(message))
	}
	return encode(message, c.g24)
}

func encode(message bit.Bits, g bit.Matrix) (bit.Bits, error) {
	codeword, err := message.MulMatrix(g)
	if err != nil {
		return nil, fmt.Errorf("fec/golay_23_12: encode: %w", err)
	}
	return codeword, nil
}

// Decode a received 23 bit word into its 12 bit message, correcting up to
// three bit errors.
func (c *Golay_23_12) Decode(received bit.Bits) (bit.Bits, error) {
	extended, err := extend(received)
	if err != nil {
		return nil, err
	}
	return c.DecodeExtended(extended)
}

// DecodeWith decodes a received 23 bit word using the supplied 24 bit error
// vector instead of searching for one.
func (c *Golay_23_12) DecodeWith(received, errorVector bit.Bits) (bit.Bits, error) {
	extended, err := extend(received)
	if err != nil {
		return nil, err
	}
	if len(errorVector) != Golay_24_12_CodewordSize {
		return nil, fmt.Errorf("%w: error vector must be %d bits, got %d", ErrInvalidLength, Golay_24_12_CodewordSize, len(errorVector))
	}
	return correct(extended, errorVector)
}

// DecodeNoCorrection returns the message part of the received word as is.
func (c *Golay_23_12) DecodeNoCorrection(received bit.Bits) (bit.Bits, error) {
	return c.DecodeWith(received, bit.Zero(Golay_24_12_CodewordSize))
}

// DecodeExtended decodes a 24 bit extended codeword. Unlike the 23 bit form,
// the extended code detects weight 4 error patterns and reports them as
// ErrUncorrectable.
func (c *Golay_23_12) DecodeExtended(received bit.Bits) (bit.Bits, error) {
	errorVector, err := c.ErrorVector(received)
	if err != nil {
		return nil, err
	}
	return correct(received, errorVector)
}

// ErrorVector locates the error pattern of weight at most 3 in a 24 bit
// extended word.
func (c *Golay_23_12) ErrorVector(received bit.Bits) (bit.Bits, error) {
	if len(received) != Golay_24_12_CodewordSize {
		return nil, fmt.Errorf("%w: extended decode expects %d bits, got %d", ErrInvalidLength, Golay_24_12_CodewordSize, len(received))
	}

	s, err := syndrome(received, c.h)
	if err != nil {
		return nil, err
	}
	if s.Weight() <= 3 {
		return bit.Concat(s, bit.Zero(Golay_23_12_DataSize)), nil
	}
	if sum, i, ok := searchRows(s, golay_23_12_B); ok {
		return bit.Concat(sum, bit.Unit(Golay_23_12_DataSize, i)), nil
	}

	s2, err := syndrome(s, golay_23_12_B)
	if err != nil {
		return nil, err
	}
	if s2.Weight() <= 3 {
		return bit.Concat(bit.Zero(Golay_23_12_DataSize), s2), nil
	}
	if sum, i, ok := searchRows(s2, golay_23_12_B); ok {
		return bit.Concat(bit.Unit(Golay_23_12_DataSize, i), sum), nil
	}

	return nil, fmt.Errorf("%w: syndrome %s has no coset leader of weight <= 3", ErrUncorrectable, s)
}

// extend appends the overall parity bit that gives the word odd weight.
func extend(received bit.Bits) (bit.Bits, error) {
	if len(received) != Golay_23_12_CodewordSize {
		return nil, fmt.Errorf("%w: decode expects %d bits, got %d", ErrInvalidLength, Golay_23_12_CodewordSize, len(received))
	}
	var parity bit.Bit
	if received.Weight()%2 == 0 {
		parity = 1
	}
	return bit.Concat(received, bit.Bits{parity}), nil
}

func correct(received, errorVector bit.Bits) (bit.Bits, error) {
	corrected, err := received.Add(errorVector)
	if err != nil {
		return nil, fmt.Errorf("fec/golay_23_12: correct: %w", err)
	}
	return corrected[:Golay_23_12_DataSize], nil
}

func syndrome(w bit.Bits, m bit.Matrix) (bit.Bits, error) {
	s, err := w.MulMatrix(m)
	if err != nil {
		return nil, fmt.Errorf("fec/golay_23_12: syndrome: %w", err)
	}
	return s, nil
}

// searchRows returns the first row b_i of m for which s + b_i has weight at
// most 2.
func searchRows(s bit.Bits, m bit.Matrix) (bit.Bits, int, bool) {
	for i, row := range m {
		sum, err := s.Add(row)
		if err != nil {
			return nil, 0, false
		}
		if sum.Weight() <= 2 {
			return sum, i, true
		}
	}
	return nil, 0, false
}
