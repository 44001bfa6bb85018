// Package password represents a password in the system.
package password

import "fmt"

const minLength = 8

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns a masked representation so a password never leaks into
// logs or error messages.
func (p Password) String() string {
	return "[REDACTED]"
}

// Value returns the raw password for hashing.
func (p Password) Value() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if len(value) < minLength {
		return Password{}, fmt.Errorf("password must be at least %d characters", minLength)
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function panics.
func MustParse(value string) Password {
	password, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return password
}
