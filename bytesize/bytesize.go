// Package bytesize renders byte counts for humans using base-1024 units.
package bytesize

import (
	"math/big"
	"strings"
)

// DefaultDecimals is the precision used by [Format].
const DefaultDecimals = 2

const k = 1024

var units = [...]string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

// Format renders n with [DefaultDecimals] places, e.g. 1536 -> "1.5 KB".
func Format(n int64) string {
	return FormatDecimals(n, DefaultDecimals)
}

// FormatDecimals renders n in the largest unit whose scaled value is at
// least 1, rounded to decimals places with trailing zeros dropped.
// Zero is always "0 Bytes". Negative decimals are treated as 0, units
// stop at PB, and negative counts keep their sign.
func FormatDecimals(n int64, decimals int) string {
	if n == 0 {
		return "0 Bytes"
	}

	if decimals < 0 {
		decimals = 0
	}

	var sign string
	mag := uint64(n)
	if n < 0 {
		sign = "-"
		mag = uint64(-(n + 1)) + 1
	}

	// floor(log1024(mag)) without floating point error at unit edges.
	i := 0
	for i < len(units)-1 && mag >= uint64(1)<<(10*(i+1)) {
		i++
	}

	return sign + round(mag, uint(10*i), decimals) + " " + units[i]
}

// round returns mag / 2^shift to decimals places, ties rounded up, with
// trailing zeros dropped. The quotient is computed exactly.
func round(mag uint64, shift uint, decimals int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	num := new(big.Int).Mul(new(big.Int).SetUint64(mag), scale)
	den := new(big.Int).Lsh(big.NewInt(1), shift)

	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Lsh(r, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	digits := q.String()
	if decimals == 0 {
		return digits
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole, frac := digits[:len(digits)-decimals], strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		return whole
	}

	return whole + "." + frac
}
