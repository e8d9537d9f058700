// Package session carries the authenticated dashboard actor through a request.
package session

import (
	"context"
	"errors"
)

const RoleAdmin = "admin"

var ErrNoSession = errors.New("no authenticated session")

// Session is the actor supplied by the identity provider. Token is forwarded
// verbatim to the backend data API.
type Session struct {
	AdminID   string
	CompanyID string
	Name      string
	Email     string
	Role      string
	Token     string
}

func (s Session) Validate() error {
	if s.AdminID == "" || s.CompanyID == "" {
		return ErrNoSession
	}
	return nil
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type contextKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
