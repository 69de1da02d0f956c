package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestCreateAndVerify(t *testing.T) {
	token, err := CreateToken(secret, "a@b.com", time.Now())
	require.NoError(t, err)

	claims, err := VerifyToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "a@b.com", claims.Subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := CreateToken(secret, "a@b.com", time.Now())
	require.NoError(t, err)

	_, err = VerifyToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token, err := CreateToken(secret, "a@b.com", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = VerifyToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Email: "a@b.com"})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = VerifyToken(secret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmptySecret(t *testing.T) {
	_, err := CreateToken(nil, "a@b.com", time.Now())
	assert.Error(t, err)
	_, err = VerifyToken(nil, "x")
	assert.Error(t, err)
}

func TestCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, "tok", "localhost", false)
	ClearCookie(rec, "localhost", false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
