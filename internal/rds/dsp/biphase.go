package dsp

/*------------------------------------------------------------------
 *
 * Name:	BiphaseDecoder / DeltaDecoder
 *
 * Purpose:	Biphase (Manchester-like) symbol recovery and RDS
 *		differential decoding, per spec.md §4.2's two named
 *		contracts.
 *
 * Grounded:	original_source/src/subcarrier.cc biphase_decoder_t /
 *		delta_decoder_t; kept as two small single-purpose structs
 *		in the teacher's "plain owned state" style (spec.md §9).
 *
 *------------------------------------------------------------------*/

// BiphaseDecoder holds the previous PSK symbol and emits a biphase symbol
// as half the difference of consecutive PSK symbols, choosing the correct
// output parity by periodically comparing |real| sums across even/odd
// indices (spec.md §4.2).
type BiphaseDecoder struct {
	prev          complex128
	hasPrev       bool
	index         int
	clockPolarity bool // true: emit on odd indices
	evenSum       float64
	oddSum        float64
}

// Push feeds one PSK symbol in and returns a biphase symbol when the
// decoder's chosen parity lands on this index.
func (b *BiphaseDecoder) Push(symbol complex128) (complex128, bool) {
	var biphase complex128

	haveBiphase := false

	if b.hasPrev {
		biphase = (symbol - b.prev) / 2

		mag := absReal(real(biphase))
		if b.index%2 == 0 {
			b.evenSum += mag
		} else {
			b.oddSum += mag
		}

		if b.index%2 == boolToInt(b.clockPolarity) {
			haveBiphase = true
		}
	}

	b.prev = symbol
	b.hasPrev = true
	b.index++

	if b.index >= 128 {
		b.clockPolarity = b.oddSum > b.evenSum
		b.evenSum, b.oddSum = 0, 0
		b.index = 0
	}

	return biphase, haveBiphase
}

func absReal(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// DeltaDecoder implements RDS's differential coding: emits input XOR
// previous input.
type DeltaDecoder struct {
	prev    int
	hasPrev bool
}

// Push feeds one raw bit (0 or 1) and returns the differentially decoded
// bit.
func (d *DeltaDecoder) Push(input int) int {
	out := input
	if d.hasPrev {
		out = input ^ d.prev
	} else {
		out = input
	}

	d.prev = input
	d.hasPrev = true

	return out
}
