// Package password represents a password in the system.
package password

import "fmt"

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns a masked value, never the password.
func (p Password) String() string {
	return "*****"
}

// Secret returns the raw password value.
func (p Password) Secret() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("*****"), nil
}

// Parse parses the string value and returns a password if the value complies
// with the rules for a password. The upper bound is the bcrypt input limit.
func Parse(value string) (Password, error) {
	if len(value) < 1 || len(value) > 72 {
		return Password{}, fmt.Errorf("invalid password length %d", len(value))
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function
// panics.
func MustParse(value string) Password {
	pw, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return pw
}
