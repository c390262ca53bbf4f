package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartdelivery/internal/pkg/auth"
	"smartdelivery/internal/pkg/errs"
)

// LoginResponse carries the issued token and the resolved principal.
type LoginResponse struct {
	Token       string
	PrincipalID uuid.UUID
	Role        string
}

// LoginQueryHandler authenticates drivers and enterprises by email. The
// email is looked up in both account tables; driver accounts win when a pair
// collides.
type LoginQueryHandler struct {
	db     *gorm.DB
	tokens *auth.Tokens
}

// NewLoginQueryHandler creates a handler for login attempts.
func NewLoginQueryHandler(db *gorm.DB, tokens *auth.Tokens) LoginQueryHandler {
	return LoginQueryHandler{db: db, tokens: tokens}
}

// Handle checks the credentials and issues a bearer token. Unknown email and
// wrong password both report not-authorized so the response does not leak
// which accounts exist.
func (h LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (LoginResponse, error) {
	if err := query.Validate(); err != nil {
		return LoginResponse{}, err
	}

	id, hash, role, err := h.findAccount(ctx, query.Email())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, errs.NewNotAuthorizedError("invalid credentials")
		}
		return LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(query.Password())) != nil {
		return LoginResponse{}, errs.NewNotAuthorizedError("invalid credentials")
	}

	token, err := h.tokens.Issue(id, role)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: token, PrincipalID: id, Role: role}, nil
}

func (h LoginQueryHandler) findAccount(ctx context.Context, email string) (uuid.UUID, string, string, error) {
	var id uuid.UUID
	var hash string

	err := h.db.WithContext(ctx).Raw(`
		SELECT id, password_hash FROM drivers WHERE email = ?
	`, email).Row().Scan(&id, &hash)
	if err == nil {
		return id, hash, "driver", nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", "", err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT id, password_hash FROM enterprises WHERE email = ?
	`, email).Row().Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, "", "", gorm.ErrRecordNotFound
		}
		return uuid.Nil, "", "", err
	}
	return id, hash, "enterprise", nil
}
