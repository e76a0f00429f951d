package common

import (
	"context"

	"github.com/google/uuid"

	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
)

type sessionIDKey struct{}
type userIDKey struct{}
type accessTokenKey struct{}

func AttachSessionIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, sessionIDKey{}, id)
}

func SessionIDFromContext(c context.Context) (uuid.UUID, error) {
	id, ok := c.Value(sessionIDKey{}).(uuid.UUID)
	if !ok {
		return uuid.Nil, inErrors.ErrMissingSession
	}
	return id, nil
}

func AttachUserIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, userIDKey{}, id)
}

// UserIDFromContext returns nil when the request is anonymous.
func UserIDFromContext(c context.Context) *uuid.UUID {
	id, ok := c.Value(userIDKey{}).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func AttachAccessTokenToContext(c context.Context, token string) context.Context {
	return context.WithValue(c, accessTokenKey{}, token)
}

func AccessTokenFromContext(c context.Context) string {
	token, _ := c.Value(accessTokenKey{}).(string)
	return token
}
