package auth

import (
	"context"
	"infinity-park/internal/model"
)

// Session identifies the caller of one action. A nil *Session means the
// caller is not logged in.
type Session struct {
	UserID uint       `json:"user_id"`
	Role   model.Role `json:"role"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == model.RoleAdministrator
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
