package gmsm

import "testing"

func TestFpAdd(t *testing.T) {
	a := FpFromHex("1")
	b := FpFromHex("2")
	c := a.Add(b)
	want := FpFromHex("3")
	if !c.Equal(want) {
		t.Fatalf("got %s, want %s", c.ToHex(), want.ToHex())
	}
}

func TestFpSub(t *testing.T) {
	a := FpFromHex("5")
	b := FpFromHex("3")
	c := a.Sub(b)
	want := FpFromHex("2")
	if !c.Equal(want) {
		t.Fatalf("got %s, want %s", c.ToHex(), want.ToHex())
	}
}

func TestFpMul(t *testing.T) {
	a := FpFromHex("3")
	b := FpFromHex("4")
	c := a.Mul(b)
	want := FpFromHex("c")
	if !c.Equal(want) {
		t.Fatalf("got %s, want %s", c.ToHex(), want.ToHex())
	}
}

func TestFpInvert(t *testing.T) {
	a := FpFromHex("3")
	inv, err := a.Invert()
	if err != nil {
		t.Fatal(err)
	}
	product := a.Mul(inv)
	if !product.IsOne() {
		t.Fatalf("expected 1, got %s", product.ToHex())
	}
}

func TestFpInvertZeroFails(t *testing.T) {
	if _, err := FpZero().Invert(); err == nil {
		t.Fatal("expected ErrInvalidField for inverse of zero")
	}
}

func TestFpNegate(t *testing.T) {
	a := FpFromHex("1")
	neg := a.Negate()
	sum := a.Add(neg)
	if !sum.IsZero() {
		t.Fatalf("expected 0, got %s", sum.ToHex())
	}
}

func TestFpSqrtRoundTrip(t *testing.T) {
	a := FpFromHex("4")
	root, err := a.Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if !root.Square().Equal(a) {
		t.Fatalf("sqrt(4)^2 = %s, want %s", root.Square().ToHex(), a.ToHex())
	}
}

func TestFpSqrtNonResidueFails(t *testing.T) {
	// SM2_P ≡ 3 (mod 4), so -1 is a quadratic non-residue: for any nonzero
	// a, exactly one of {a, -a} is a residue. Picking whichever of a few
	// candidate/negated pairs fails gives a deterministic non-residue
	// without hardcoding a magic constant.
	for _, candidate := range []FpElement{FpFromHex("2"), FpFromHex("3"), FpFromHex("5")} {
		if _, err := candidate.Sqrt(); err != nil {
			return // candidate itself is already a non-residue
		}
		if _, err := candidate.Negate().Sqrt(); err != nil {
			return // -candidate is a non-residue
		}
	}
	t.Fatal("expected at least one of the candidates or their negations to be a non-residue")
}

func TestBatchInvertFp(t *testing.T) {
	in := []FpElement{FpFromHex("2"), FpFromHex("3"), FpFromHex("5")}
	out, err := batchInvertFp(in)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range in {
		want, err := v.Invert()
		if err != nil {
			t.Fatal(err)
		}
		if !out[i].Equal(want) {
			t.Fatalf("batchInvertFp[%d] = %s, want %s", i, out[i].ToHex(), want.ToHex())
		}
	}
}

func TestBatchInvertFpZeroFails(t *testing.T) {
	in := []FpElement{FpFromHex("2"), FpZero()}
	if _, err := batchInvertFp(in); err == nil {
		t.Fatal("expected ErrInvalidField for a zero element in the batch")
	}
}
