// Package bit implements GF(2) arithmetic on single bits, bit vectors and
// bit matrices.
package bit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOperand    = errors.New("bit: invalid operand")
	ErrLengthMismatch    = errors.New("bit: length mismatch")
	ErrDimensionMismatch = errors.New("bit: dimension mismatch")
)

// Bit is an element of GF(2), either 0 or 1.
type Bit byte

func (b *Bit) Flip() {
	(*b) ^= 0x01
}

// Valid reports whether b is 0 or 1.
func (b Bit) Valid() bool {
	return b <= 1
}

// Add returns (a + b) mod 2.
func Add(a, b Bit) (Bit, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("%w: %d + %d in mod 2 arithmetic", ErrInvalidOperand, a, b)
	}
	return a ^ b, nil
}

// Mul returns (a * b) mod 2.
func Mul(a, b Bit) (Bit, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("%w: %d * %d in mod 2 arithmetic", ErrInvalidOperand, a, b)
	}
	return a & b, nil
}

// Bits is a vector over GF(2). Methods on Bits never modify the receiver.
type Bits []Bit

func toBits(b byte) Bits {
	var o = make(Bits, 8)
	for bit, mask := 0, byte(128); bit < 8; bit, mask = bit+1, mask>>1 {
		if b&mask != 0 {
			o[bit] = 1
		}
	}
	return o
}

// NewBits expands bytes into bits, most significant bit first.
func NewBits(bytes []byte) Bits {
	var l = len(bytes)
	var o = make(Bits, 0, l*8)
	for i := 0; i < l; i++ {
		o = append(o, toBits(bytes[i])...)
	}
	return o
}

// Parse reads a string of '0' and '1' characters.
func Parse(s string) (Bits, error) {
	var o = make(Bits, len(s))
	for i, c := range []byte(s) {
		switch c {
		case '0':
		case '1':
			o[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidOperand, c, i)
		}
	}
	return o, nil
}

// Zero returns the all-zero vector of length n.
func Zero(n int) Bits {
	return make(Bits, n)
}

// Unit returns the length n vector with a single 1 at position i.
func Unit(n, i int) Bits {
	var o = make(Bits, n)
	o[i] = 1
	return o
}

// Concat joins vectors in order into a new vector.
func Concat(parts ...Bits) Bits {
	var l int
	for _, p := range parts {
		l += len(p)
	}
	var o = make(Bits, 0, l)
	for _, p := range parts {
		o = append(o, p...)
	}
	return o
}

// Bytes packs the bits into bytes, most significant bit first. A trailing
// partial byte is padded with zero bits.
func (bits Bits) Bytes() []byte {
	var l = len(bits)
	var o = make([]byte, (l+7)/8)
	for i, b := range bits {
		if b == 0x01 {
			o[i/8] |= (1 << byte(7-(i%8)))
		}
	}
	return o
}

// BitsToBytes is the inverse of NewBits; the length must be a multiple of 8.
func BitsToBytes(bits Bits) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a multiple of 8", ErrLengthMismatch, len(bits))
	}
	return bits.Bytes(), nil
}

func (bits Bits) Len() int {
	return len(bits)
}

// Weight is the Hamming weight, the number of ones.
func (bits Bits) Weight() int {
	var w int
	for _, b := range bits {
		if b == 1 {
			w++
		}
	}
	return w
}

// Add returns the element-wise GF(2) sum of bits and other.
func (bits Bits) Add(other Bits) (Bits, error) {
	if len(bits) != len(other) {
		return nil, fmt.Errorf("%w: vector addition of %d and %d bits", ErrLengthMismatch, len(bits), len(other))
	}
	var (
		o   = make(Bits, len(bits))
		err error
	)
	for i := range bits {
		if o[i], err = Add(bits[i], other[i]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (bits Bits) Clone() Bits {
	var o = make(Bits, len(bits))
	copy(o, bits)
	return o
}

func (bits Bits) Equal(other Bits) bool {
	if len(bits) != len(other) {
		return false
	}
	for i := range bits {
		if bits[i] != other[i] {
			return false
		}
	}
	return true
}

func (bits Bits) String() string {
	var s strings.Builder
	s.Grow(len(bits))
	for _, b := range bits {
		if b == 0x01 {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

// Matrix returns bits as a single row matrix.
func (bits Bits) Matrix() Matrix {
	return Matrix{bits.Clone()}
}

// MulMatrix returns the vector-matrix product bits · m.
func (bits Bits) MulMatrix(m Matrix) (Bits, error) {
	p, err := bits.Matrix().Mul(m)
	if err != nil {
		return nil, err
	}
	return p.Vector()
}
