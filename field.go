package gmsm

import "fmt"

// SM2_P is the SM2 curve's field prime: p = 2^256 - 2^224 - 2^96 + 2^64 - 1.
var SM2_P = BigInt256{
	limbs: [4]uint64{
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFF00000000,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFEFFFFFFFF,
	},
}

// FpElement is an element of the SM2 prime field GF(p). Multiplication,
// squaring and inversion reduce through the fast Solinas path
// (SM2ModMulP/SM2ModSquareP), since p's shape is fixed and known at compile
// time; Sqrt goes through the generic ModPow and its long-division reducer.
type FpElement struct {
	value BigInt256
}

// NewFpElement reduces v into [0, SM2_P) and wraps it.
func NewFpElement(v BigInt256) FpElement {
	if v.Compare(&SM2_P) >= 0 {
		v = v.ModSub(&SM2_P, &SM2_P)
	}
	return FpElement{value: v}
}

func FpFromHex(s string) FpElement {
	return NewFpElement(BigInt256FromHex(s))
}

func FpZero() FpElement {
	return FpElement{value: bigZero}
}

func FpOne() FpElement {
	return FpElement{value: bigOne}
}

func (a FpElement) IsZero() bool {
	return a.value.IsZero()
}

func (a FpElement) IsOne() bool {
	return a.value.IsOne()
}

// IsOdd reports whether the element's canonical representative is odd,
// used by the compressed point encoding to pick Y's sign bit.
func (a FpElement) IsOdd() bool {
	return a.value.IsOdd()
}

func (a FpElement) Add(b FpElement) FpElement {
	return FpElement{value: a.value.ModAdd(&b.value, &SM2_P)}
}

func (a FpElement) Sub(b FpElement) FpElement {
	return FpElement{value: a.value.ModSub(&b.value, &SM2_P)}
}

func (a FpElement) Mul(b FpElement) FpElement {
	return FpElement{value: a.value.SM2ModMulP(&b.value)}
}

func (a FpElement) Square() FpElement {
	return FpElement{value: a.value.SM2ModSquareP()}
}

func (a FpElement) Negate() FpElement {
	if a.IsZero() {
		return a
	}
	return FpElement{value: SM2_P.ModSub(&a.value, &SM2_P)}
}

// Invert returns a^(-1) mod p using Fermat's little theorem with SM2 fast
// reduction, failing with ErrInvalidField instead of computing a
// meaningless result when a is zero.
func (a FpElement) Invert() (FpElement, error) {
	if a.IsZero() {
		return FpElement{}, fmt.Errorf("%w: inverse of zero", ErrInvalidField)
	}
	pMinus2, _ := SM2_P.Sub(&bigTwo)
	result := bigOne
	base := a.value
	bitLen := pMinus2.BitLength()
	for i := 0; i < bitLen; i++ {
		if pMinus2.GetBit(i) {
			result = result.SM2ModMulP(&base)
		}
		base = base.SM2ModSquareP()
	}
	return FpElement{value: result}, nil
}

// Sqrt returns a square root of a mod p, using the x^((p+1)/4) fast path
// valid because SM2_P ≡ 3 (mod 4). The candidate is verified by squaring;
// if a is not a quadratic residue, Sqrt fails with ErrInvalidField rather
// than returning a nonsense value.
func (a FpElement) Sqrt() (FpElement, error) {
	if a.IsZero() {
		return FpZero(), nil
	}
	// exponent = (p + 1) / 4
	pPlus1, _ := SM2_P.Add(&bigOne)
	exponent := pPlus1.ShiftRight1().ShiftRight1()
	candidate := FpElement{value: a.value.ModPow(&exponent, &SM2_P)}
	if !candidate.Square().Equal(a) {
		return FpElement{}, fmt.Errorf("%w: not a quadratic residue", ErrInvalidField)
	}
	return candidate, nil
}

func (a FpElement) Div(b FpElement) (FpElement, error) {
	inv, err := b.Invert()
	if err != nil {
		return FpElement{}, err
	}
	return a.Mul(inv), nil
}

func (a FpElement) Double() FpElement {
	return a.Add(a)
}

func (a FpElement) Triple() FpElement {
	return a.Double().Add(a)
}

func (a FpElement) ToBigInt() BigInt256 {
	return a.value
}

func (a FpElement) ToBEBytes() [32]byte {
	return a.value.ToBEBytes()
}

func (a FpElement) ToHex() string {
	return a.value.ToHex()
}

func (a FpElement) Equal(b FpElement) bool {
	return a.value == b.value
}

// batchInvertFp inverts every element of in at once using Montgomery's
// trick: one modular inversion plus 3*len(in) multiplications, instead of
// len(in) independent inversions. Any zero element fails the whole batch
// with ErrInvalidField, matching the single-element Invert's behavior.
func batchInvertFp(in []FpElement) ([]FpElement, error) {
	n := len(in)
	if n == 0 {
		return nil, nil
	}
	prefix := make([]FpElement, n)
	acc := FpOne()
	for i, v := range in {
		if v.IsZero() {
			return nil, fmt.Errorf("%w: inverse of zero at index %d", ErrInvalidField, i)
		}
		prefix[i] = acc
		acc = acc.Mul(v)
	}
	accInv, err := acc.Invert()
	if err != nil {
		return nil, err
	}
	out := make([]FpElement, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = prefix[i].Mul(accInv)
		accInv = accInv.Mul(in[i])
	}
	return out, nil
}
