package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const Version = "1.0.0"

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// usage text has already been printed
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) != 2 {
		printUsage(stderr)
		return fmt.Errorf("%w: expected 2 arguments, got %d", errUsage, len(args))
	}

	username := args[0]
	password := []byte(args[1])
	defer zeroBytes(password)

	cred, err := generate(password)
	if err != nil {
		return fmt.Errorf("failed to generate verifier: %w", err)
	}

	if _, err := fmt.Fprintln(stdout, cred.UserlistLine(username)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func printUsage(w io.Writer) {
	usage := `generate-verifier %s - SCRAM-SHA-256 verifiers for PgBouncer userlist.txt

USAGE:
    generate-verifier <username> <password>

ARGUMENTS:
    <username>    Role name, written quoted as the first field
    <password>    Plaintext password

OUTPUT:
    "<username>" "SCRAM-SHA-256$4096:<salt>$<stored_key>:<server_key>"

EXAMPLES:
    # Append a user to PgBouncer's auth file
    generate-verifier app_user 's3cret' >> userlist.txt

`
	fmt.Fprintf(w, usage, Version)
}
