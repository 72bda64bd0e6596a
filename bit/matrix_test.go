package bit

import (
	"errors"
	"testing"
)

var (
	testA = MustMatrix(
		"101",
		"011",
	)
	testB = MustMatrix(
		"11",
		"01",
		"10",
	)
	testC = MustMatrix(
		"1001",
		"0110",
	)
)

func TestMatrixMul(t *testing.T) {
	got, err := testA.Mul(testB)
	if err != nil {
		t.Fatal(err)
	}
	want := MustMatrix(
		"01",
		"11",
	)
	if !got.Equal(want) {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}

	if _, err := testA.Mul(testA); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestMatrixAssociative(t *testing.T) {
	ab, _ := testA.Mul(testB)
	abc, err := ab.Mul(testC)
	if err != nil {
		t.Fatal(err)
	}
	bc, _ := testB.Mul(testC)
	abc2, err := testA.Mul(bc)
	if err != nil {
		t.Fatal(err)
	}
	if !abc.Equal(abc2) {
		t.Fatalf("(AB)C != A(BC):\n%s\n\n%s", abc, abc2)
	}
}

func TestMatrixDistributive(t *testing.T) {
	d := MustMatrix(
		"10",
		"11",
		"00",
	)
	sum, err := testB.Add(d)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := testA.Mul(sum)
	ab, _ := testA.Mul(testB)
	ad, _ := testA.Mul(d)
	right, err := ab.Add(ad)
	if err != nil {
		t.Fatal(err)
	}
	if !left.Equal(right) {
		t.Fatalf("A(B+D) != AB+AD:\n%s\n\n%s", left, right)
	}

	if _, err := testA.Add(testB); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestMatrixIdentity(t *testing.T) {
	for _, m := range []Matrix{testA, testB, testC} {
		got, err := Identity(m.Rows()).Mul(m)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(m) {
			t.Fatalf("I·M != M:\n%s", got)
		}
	}
}

func TestMatrixJoin(t *testing.T) {
	got, err := testA.Join(testC)
	if err != nil {
		t.Fatal(err)
	}
	want := MustMatrix(
		"1011001",
		"0110110",
	)
	if !got.Equal(want) {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
	if _, err := testA.Join(testB); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}

	stacked, err := testB.VerticalJoin(Identity(2))
	if err != nil {
		t.Fatal(err)
	}
	if stacked.Rows() != 5 || stacked.Cols() != 2 || stacked[3].String() != "10" {
		t.Fatalf("unexpected vertical join:\n%s", stacked)
	}
	if _, err := testA.VerticalJoin(testB); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestMatrixVector(t *testing.T) {
	v, _ := Parse("110")
	m := v.Matrix()
	if m.Rows() != 1 || m.Cols() != 3 {
		t.Fatalf("unexpected shape %d x %d", m.Rows(), m.Cols())
	}
	back, err := m.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(v) {
		t.Fatalf("expected %s, got %s", v, back)
	}
	if _, err := testA.Vector(); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}

	p, err := v.MulMatrix(testB)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "10" {
		t.Fatalf("expected 10, got %s", p)
	}
}

func TestNewMatrixRagged(t *testing.T) {
	if _, err := NewMatrix(Bits{0, 1}, Bits{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
	if tr := testB.Transpose(); !tr.Equal(MustMatrix("101", "110")) {
		t.Fatalf("unexpected transpose:\n%s", tr)
	}
}
