package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// ipHasher hashes client addresses before they reach the logs. The salt
// lives only as long as the process, so hashes can be correlated within
// one run but not across restarts.
type ipHasher struct {
	salt []byte
}

func newIPHasher() (*ipHasher, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return &ipHasher{salt: salt}, nil
}

func (h *ipHasher) hash(ip string) string {
	sum := sha256.New()
	sum.Write(h.salt)
	sum.Write([]byte(ip))
	return hex.EncodeToString(sum.Sum(nil))[:16]
}
