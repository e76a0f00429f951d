package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/user"
)

func bearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	if len(authorization) < len("bearer ") ||
		!strings.EqualFold(authorization[:len("bearer ")], "bearer ") {
		return ""
	}
	return authorization[len("bearer "):]
}

// Auth rejects requests without a valid access token.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware auth").
				Logger()
			c := logger.WithContext(r.Context())

			token := bearerToken(r)
			if token == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			userID, err := user.VerifyToken(c, token, jwtSecret)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachUserIDToContext(c, userID)
			c = common.AttachAccessTokenToContext(c, token)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through anonymously otherwise. Checkout uses this so orders from a
// logged-in session carry the user id while guests can still buy.
func OptionalAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware optionalAuth").
				Logger()
			c := logger.WithContext(r.Context())

			token := bearerToken(r)
			if token != "" {
				userID, err := user.VerifyToken(c, token, jwtSecret)
				if err == nil {
					c = common.AttachUserIDToContext(c, userID)
					c = common.AttachAccessTokenToContext(c, token)
				} else {
					logger.Info().Err(err).Msg("ignoring invalid token on optional route")
				}
			}

			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
