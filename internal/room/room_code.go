package room

import (
	"math/rand"
)

const codeLength = 4
const maxRetries = 100

var codeLetters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateCode creates a random 4-letter uppercase room code, retrying
// against existing codes to avoid duplicates.
func GenerateCode(existing map[string]bool) string {
	for i := 0; i < maxRetries; i++ {
		code := randomCode()
		if !existing[code] {
			return code
		}
	}
	// Fallback: extremely unlikely with 26^4 = 456,976 combinations
	return randomCode()
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = codeLetters[rand.Intn(len(codeLetters))]
	}
	return string(b)
}
