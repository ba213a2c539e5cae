package main

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verifierPattern = regexp.MustCompile(`^SCRAM-SHA-256\$4096:([A-Za-z0-9+/]+=*)\$([A-Za-z0-9+/]+=*):([A-Za-z0-9+/]+=*)$`)

// splitVerifier decodes the salt, stored key and server key of a verifier
func splitVerifier(t *testing.T, verifier string) (salt, storedKey, serverKey []byte) {
	t.Helper()

	m := verifierPattern.FindStringSubmatch(verifier)
	require.NotNil(t, m, "malformed verifier: %s", verifier)

	decoded := make([][]byte, 3)
	for i := range decoded {
		var err error
		decoded[i], err = base64.StdEncoding.DecodeString(m[i+1])
		require.NoError(t, err)
	}
	return decoded[0], decoded[1], decoded[2]
}

func testCredential() Credential {
	cred := Credential{Iterations: Iterations}
	for i := range cred.StoredKey {
		cred.StoredKey[i] = 0xff
	}
	for i := range cred.ServerKey {
		cred.ServerKey[i] = byte(i)
	}
	return cred
}

func TestCredentialVerifier(t *testing.T) {
	verifier := testCredential().Verifier()

	assert.Equal(t,
		"SCRAM-SHA-256$4096:AAAAAAAAAAAAAAAAAAAAAA==$//////////////////////////////////////////8=:AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=",
		verifier,
	)

	salt, storedKey, serverKey := splitVerifier(t, verifier)
	assert.Len(t, salt, SaltLen)
	assert.Len(t, storedKey, KeyLen)
	assert.Len(t, serverKey, KeyLen)
}

func TestCredentialUserlistLine(t *testing.T) {
	cred := testCredential()
	verifier := cred.Verifier()

	tests := []struct {
		name     string
		username string
		want     string
	}{
		{name: "plain", username: "user", want: `"user" "` + verifier + `"`},
		{name: "spaces", username: "app user", want: `"app user" "` + verifier + `"`},
		{name: "embedded quote", username: `a"b`, want: `"a"b" "` + verifier + `"`},
		{name: "empty", username: "", want: `"" "` + verifier + `"`},
		{name: "backslash kept", username: `dom\user`, want: `"dom\user" "` + verifier + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cred.UserlistLine(tt.username))
		})
	}
}

func TestCredentialIsValueCopy(t *testing.T) {
	original := testCredential()
	copied := original
	copied.Salt[0] = 0x42

	assert.Equal(t, byte(0), original.Salt[0])
}
