package utils

import (
	"crypto/rand"
	"errors"
)

// RandomDigits returns n random decimal digits. Leading zeros are allowed;
// the result is a code, not a number.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid code length")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = '0' + (buf[i] % 10)
	}
	return string(buf), nil
}
