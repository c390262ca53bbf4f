// Package queries contains the read side of the dispatch core. Query
// handlers read the database directly and return plain response structs;
// they never load aggregates or hold transactions.
package queries

import "errors"

// ErrLoginQueryIsNotConstructed is returned when a LoginQuery was not created
// via its constructor.
var ErrLoginQueryIsNotConstructed = errors.New(
	"LoginQuery must be created via NewLoginQuery constructor",
)

// LoginQuery exchanges credentials for a bearer token. The account's role is
// resolved here, once, and baked into the token.
type LoginQuery struct {
	email    string
	password string

	isConstructed bool
}

// NewLoginQuery creates a login attempt.
func NewLoginQuery(email, password string) (LoginQuery, error) {
	if email == "" {
		return LoginQuery{}, errors.New("email is required")
	}
	if password == "" {
		return LoginQuery{}, errors.New("password is required")
	}
	return LoginQuery{email: email, password: password, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q LoginQuery) Validate() error {
	if !q.isConstructed {
		return ErrLoginQueryIsNotConstructed
	}
	return nil
}

// Email returns the login email.
func (q LoginQuery) Email() string { return q.email }

// Password returns the plaintext password to check.
func (q LoginQuery) Password() string { return q.password }
