package services

import (
	"crypto/rand"
	"math/big"
)

const (
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberLength   = 8
	// maxOrderNumberAttempts bounds the collision retry; at 36^8 values it
	// is only reached if the generator is broken.
	maxOrderNumberAttempts = 1000
)

// OrderNumberGenerator produces candidate order numbers.
type OrderNumberGenerator func() (string, error)

// RandomOrderNumber returns 8 random uppercase alphanumeric characters.
func RandomOrderNumber() (string, error) {
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	buf := make([]byte, orderNumberLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = orderNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}
