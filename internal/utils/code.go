package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ConfirmationCode returns prefix + "-" + six random upper-case
// alphanumerics, e.g. LAIFF-7QK2ZD.
func ConfirmationCode(prefix string) (string, error) {
	buf := make([]byte, 6)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return prefix + "-" + string(buf), nil
}

// NewID returns a random record id.
func NewID() string { return uuid.NewString() }
