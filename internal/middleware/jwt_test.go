package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss": TokenIssuer,
		"sub": "user-1",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
}

func TestValidateTokenWebIPBinding(t *testing.T) {
	key := testKey(t)
	claims := baseClaims()
	claims["ip"] = "203.0.113.7"
	tok := signToken(t, key, claims)

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	parsed, err := ValidateToken(tok, ident, &key.PublicKey)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	ident.Value = "198.51.100.1"
	_, err = ValidateToken(tok, ident, &key.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenDeviceBinding(t *testing.T) {
	key := testKey(t)
	claims := baseClaims()
	claims["device_id"] = "device-abc"
	tok := signToken(t, key, claims)

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeDeviceID, Value: "device-abc"}
	_, err := ValidateToken(tok, ident, &key.PublicKey)
	require.NoError(t, err)

	ident.Value = "device-xyz"
	_, err = ValidateToken(tok, ident, &key.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenMissingBindingClaim(t *testing.T) {
	key := testKey(t)
	tok := signToken(t, key, baseClaims())

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(tok, ident, &key.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	key := testKey(t)
	claims := baseClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	claims["ip"] = "203.0.113.7"
	tok := signToken(t, key, claims)

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(tok, ident, &key.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	key := testKey(t)
	claims := baseClaims()
	claims["iss"] = "SomeoneElse"
	claims["ip"] = "203.0.113.7"
	tok := signToken(t, key, claims)

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(tok, ident, &key.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenWrongKey(t *testing.T) {
	signingKey := testKey(t)
	otherKey := testKey(t)

	claims := baseClaims()
	claims["ip"] = "203.0.113.7"
	tok := signToken(t, signingKey, claims)

	ident := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(tok, ident, &otherKey.PublicKey)
	require.Error(t, err)
}
