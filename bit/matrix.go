package bit

import "fmt"

// Matrix is a rectangular grid of bits stored as rows. Operations return new
// matrices and leave their operands untouched.
type Matrix []Bits

// NewMatrix builds a matrix from rows, which must all have the same length.
func NewMatrix(rows ...Bits) (Matrix, error) {
	var m = make(Matrix, len(rows))
	for i, row := range rows {
		if i > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrDimensionMismatch, i, len(row), len(rows[0]))
		}
		m[i] = row.Clone()
	}
	return m, nil
}

// MustMatrix is like NewMatrix but panics on ragged rows. It is meant for
// package level constants.
func MustMatrix(rows ...string) Matrix {
	var m = make(Matrix, len(rows))
	for i, s := range rows {
		row, err := Parse(s)
		if err != nil {
			panic(err)
		}
		m[i] = row
	}
	if _, err := NewMatrix(m...); err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	var m = make(Matrix, n)
	for i := range m {
		m[i] = Unit(n, i)
	}
	return m
}

func (m Matrix) Rows() int {
	return len(m)
}

func (m Matrix) Cols() int {
	if len(m) > 0 {
		return len(m[0])
	}
	return 0
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) Bits {
	return m[i].Clone()
}

func (m Matrix) shape() string {
	return fmt.Sprintf("%d x %d", m.Rows(), m.Cols())
}

// Add returns the element-wise sum m + other.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return nil, fmt.Errorf("%w: addition of %s and %s", ErrDimensionMismatch, m.shape(), other.shape())
	}
	var (
		o   = make(Matrix, m.Rows())
		err error
	)
	for i := range m {
		if o[i], err = m[i].Add(other[i]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Mul returns the matrix product m · other over GF(2).
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.Cols() != other.Rows() {
		return nil, fmt.Errorf("%w: multiplication of %s by %s", ErrDimensionMismatch, m.shape(), other.shape())
	}
	var o = make(Matrix, m.Rows())
	for i := range m {
		o[i] = make(Bits, other.Cols())
		for j := 0; j < other.Cols(); j++ {
			var sum Bit
			for k := 0; k < m.Cols(); k++ {
				p, err := Mul(m[i][k], other[k][j])
				if err != nil {
					return nil, err
				}
				if sum, err = Add(sum, p); err != nil {
					return nil, err
				}
			}
			o[i][j] = sum
		}
	}
	return o, nil
}

// Join concatenates other to the right of m: [m | other].
func (m Matrix) Join(other Matrix) (Matrix, error) {
	if m.Rows() != other.Rows() {
		return nil, fmt.Errorf("%w: join of %d and %d rows", ErrDimensionMismatch, m.Rows(), other.Rows())
	}
	var o = make(Matrix, m.Rows())
	for i := range m {
		o[i] = Concat(m[i], other[i])
	}
	return o, nil
}

// VerticalJoin stacks other below m.
func (m Matrix) VerticalJoin(other Matrix) (Matrix, error) {
	if m.Rows() > 0 && other.Rows() > 0 && m.Cols() != other.Cols() {
		return nil, fmt.Errorf("%w: vertical join of %d and %d columns", ErrDimensionMismatch, m.Cols(), other.Cols())
	}
	var o = make(Matrix, 0, m.Rows()+other.Rows())
	for _, row := range m {
		o = append(o, row.Clone())
	}
	for _, row := range other {
		o = append(o, row.Clone())
	}
	return o, nil
}

func (m Matrix) Transpose() Matrix {
	var o = make(Matrix, m.Cols())
	for j := range o {
		o[j] = make(Bits, m.Rows())
		for i := range m {
			o[j][i] = m[i][j]
		}
	}
	return o
}

// Vector converts a single row matrix back into a vector.
func (m Matrix) Vector() (Bits, error) {
	if m.Rows() != 1 {
		return nil, fmt.Errorf("%w: %s matrix is not a vector", ErrDimensionMismatch, m.shape())
	}
	return m[0].Clone(), nil
}

func (m Matrix) Equal(other Matrix) bool {
	if m.Rows() != other.Rows() {
		return false
	}
	for i := range m {
		if !m[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var s string
	for i, row := range m {
		if i > 0 {
			s += "\n"
		}
		s += row.String()
	}
	return s
}
