package auth

import (
	"bytes"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func TestGenerateSecretProducesScannablePNG(t *testing.T) {
	svc := NewTOTPService("tideFocus.io")

	secret, qrPNG, err := svc.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.True(t, bytes.HasPrefix(qrPNG, pngMagic), "expected a PNG payload")
}

func TestVerifyAcceptsCurrentCode(t *testing.T) {
	svc := NewTOTPService("tideFocus.io")

	secret, _, err := svc.GenerateSecret("alice@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.True(t, svc.Verify(code, secret))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewTOTPService("tideFocus.io")

	secretA, _, err := svc.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	secretB, _, err := svc.GenerateSecret("bob@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secretA, time.Now())
	require.NoError(t, err)
	assert.False(t, svc.Verify(code, secretB))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTOTPService("tideFocus.io")

	secret, _, err := svc.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	assert.False(t, svc.Verify("000000", secret))
	assert.False(t, svc.Verify("not-a-code", secret))
}
