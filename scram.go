package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/prf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SCRAM-SHA-256 fixed parameters (RFC 5802, RFC 7677)
	Iterations = 4096
	SaltLen    = 16
	KeyLen     = sha256.Size

	Mechanism = "SCRAM-SHA-256"
)

var (
	clientKeyLabel = []byte("Client Key")
	serverKeyLabel = []byte("Server Key")
)

// generate derives a credential for password using a fresh random salt
func generate(password []byte) (Credential, error) {
	var salt [SaltLen]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return Credential{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	return generateWithSalt(password, salt)
}

// generateWithSalt is the deterministic part of generate
func generateWithSalt(password []byte, salt [SaltLen]byte) (Credential, error) {
	saltedPassword := deriveSaltedPassword(password, salt[:])
	defer zeroBytes(saltedPassword)

	mac, err := createPRFFromKey(saltedPassword)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to create HMAC keyset: %w", err)
	}

	clientKey, err := mac.ComputePrimaryPRF(clientKeyLabel, KeyLen)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to compute client key: %w", err)
	}
	defer zeroBytes(clientKey)

	serverKey, err := mac.ComputePrimaryPRF(serverKeyLabel, KeyLen)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to compute server key: %w", err)
	}

	cred := Credential{
		Iterations: Iterations,
		Salt:       salt,
		StoredKey:  sha256.Sum256(clientKey),
	}
	copy(cred.ServerKey[:], serverKey)

	return cred, nil
}

// deriveSaltedPassword is Hi() from RFC 5802, i.e. PBKDF2 with HMAC-SHA-256
func deriveSaltedPassword(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeyLen, sha256.New)
}

// createPRFFromKey creates a Tink HMAC-SHA-256 PRF set keyed with a raw key
func createPRFFromKey(key []byte) (*prf.Set, error) {
	keyValue := base64.StdEncoding.EncodeToString(buildHmacPrfKeyValue(key))

	keysetJSON := fmt.Sprintf(`{
		"primaryKeyId": 1,
		"key": [{
			"keyData": {
				"typeUrl": "type.googleapis.com/google.crypto.tink.HmacPrfKey",
				"keyMaterialType": "SYMMETRIC",
				"value": "%s"
			},
			"outputPrefixType": "RAW",
			"keyId": 1,
			"status": "ENABLED"
		}]
	}`, keyValue)

	handle, err := insecurecleartextkeyset.Read(
		keyset.NewJSONReader(strings.NewReader(keysetJSON)),
	)
	if err != nil {
		return nil, err
	}

	return prf.NewPRFSet(handle)
}

// buildHmacPrfKeyValue builds the protobuf-encoded HmacPrfKey
func buildHmacPrfKeyValue(key []byte) []byte {
	// See: https://github.com/tink-crypto/tink/blob/master/proto/hmac_prf.proto

	hashType := uint32(3) // SHA256

	// HmacPrfParams
	params := []byte{}
	params = append(params, 0x08) // field 1 (hash), varint
	params = append(params, encodeVarint(hashType)...)

	// HmacPrfKey
	result := []byte{}
	result = append(result, 0x08) // field 1 (version), varint
	result = append(result, 0x00) // version = 0
	result = append(result, 0x12) // field 2 (params), length-delimited
	result = append(result, encodeVarint(uint32(len(params)))...)
	result = append(result, params...)
	result = append(result, 0x1a) // field 3 (key_value), length-delimited
	result = append(result, encodeVarint(uint32(len(key)))...)
	result = append(result, key...)

	return result
}

// zeroBytes overwrites a byte slice with zeros
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func encodeVarint(v uint32) []byte {
	var buf []byte
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	buf = append(buf, byte(v))
	return buf
}
