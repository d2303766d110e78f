package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateOTP returns a numeric code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 4
	}
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for range length {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
