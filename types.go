package main

import (
	"encoding/base64"
	"fmt"
)

// Credential holds the long-term SCRAM-SHA-256 verifier for one password
type Credential struct {
	Iterations int
	Salt       [SaltLen]byte
	StoredKey  [KeyLen]byte
	ServerKey  [KeyLen]byte
}

// Verifier renders the credential in PostgreSQL/PgBouncer form:
// SCRAM-SHA-256$<iterations>:<salt>$<stored_key>:<server_key>
func (c Credential) Verifier() string {
	return fmt.Sprintf("%s$%d:%s$%s:%s",
		Mechanism,
		c.Iterations,
		base64.StdEncoding.EncodeToString(c.Salt[:]),
		base64.StdEncoding.EncodeToString(c.StoredKey[:]),
		base64.StdEncoding.EncodeToString(c.ServerKey[:]),
	)
}

// UserlistLine renders an auth_file entry. The username is written as given.
func (c Credential) UserlistLine(username string) string {
	return fmt.Sprintf(`"%s" "%s"`, username, c.Verifier())
}
