package oauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKid = "test-key-1"

func newTestKeyAndJWKS(t *testing.T) (*rsa.PrivateKey, *httptest.Server) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	doc := jwksDoc{Keys: []jwk{{
		Kty: "RSA",
		Kid: testKid,
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(priv.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.PublicKey.E)).Bytes()),
	}}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)

	return priv, srv
}

func signIDToken(t *testing.T, priv *rsa.PrivateKey, kid string, claims *GoogleClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func testClaims(audience string) *GoogleClaims {
	return &GoogleClaims{
		Email:         "student@example.com",
		EmailVerified: true,
		Name:          "Test Student",
		Picture:       "https://example.com/p.png",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    googleIssuer,
			Subject:   "google-sub-123",
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestGoogleVerifier_Verify(t *testing.T) {
	priv, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	raw := signIDToken(t, priv, testKid, testClaims("client-1"))

	claims, err := verifier.Verify(context.Background(), raw)
	assert.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, "Test Student", claims.Name)
	assert.Equal(t, "google-sub-123", claims.Subject)
}

func TestGoogleVerifier_Verify_WrongAudience(t *testing.T) {
	priv, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	raw := signIDToken(t, priv, testKid, testClaims("someone-else"))

	_, err := verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_Expired(t *testing.T) {
	priv, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	claims := testClaims("client-1")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	raw := signIDToken(t, priv, testKid, claims)

	_, err := verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_UnknownKid(t *testing.T) {
	priv, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	raw := signIDToken(t, priv, "rotated-away", testClaims("client-1"))

	_, err := verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_WrongIssuer(t *testing.T) {
	priv, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	claims := testClaims("client-1")
	claims.Issuer = "https://evil.example.com"
	raw := signIDToken(t, priv, testKid, claims)

	_, err := verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestGoogleVerifier_Verify_WrongKey(t *testing.T) {
	_, srv := newTestKeyAndJWKS(t)
	verifier := NewGoogleVerifier(GoogleVerifierConfig{ClientID: "client-1", JWKSURL: srv.URL})

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	raw := signIDToken(t, otherKey, testKid, testClaims("client-1"))

	_, err = verifier.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}
