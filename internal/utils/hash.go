package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken derives the storable form of a bearer secret. Raw portal
// tokens and reset codes never hit the database.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.URLEncoding.EncodeToString(sum[:])
}
