package pkg

import (
	"crypto/rand"
	"math/big"
)

// voucherCharset holds uppercase alphanumerics minus the lookalikes
// (0/O, 1/I/L) so codes survive being read aloud at the counter.
const voucherCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// VoucherCodeLength is the length of generated voucher codes.
const VoucherCodeLength = 8

// GenerateVoucherCode returns a short human-facing voucher code. Codes are
// collision-resistant, not collision-free: the caller retries on a unique
// index violation.
func GenerateVoucherCode() (string, error) {
	b := make([]byte, VoucherCodeLength)
	max := big.NewInt(int64(len(voucherCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = voucherCharset[n.Int64()]
	}
	return string(b), nil
}
