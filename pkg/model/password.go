package model

import (
	"crypto/rand"
	"math/big"
)

const (
	DefaultPasswordLength = 8
	passwordAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func RandomPassword(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf)
}
