package invitation

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

var alphabetSize = big.NewInt(int64(len(codeAlphabet)))

// GenerateInvitationCode returns six symbols drawn uniformly from A-Z0-9.
// Codes are not checked against existing ones.
func GenerateInvitationCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
