package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
)

const SessionCookieName = "csid"

// Session keys every request to a browser session. The csid cookie identifies
// the session's cart; a missing or mangled cookie gets a fresh id, which also
// means a fresh empty cart.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).
			With().
			Str(log.KeyTag, "middleware session").
			Logger()

		var sessionID uuid.UUID
		cookie, err := r.Cookie(SessionCookieName)
		if err == nil {
			sessionID, err = uuid.Parse(cookie.Value)
		}
		if err != nil {
			sessionID = uuid.New()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID.String(),
				Path:     "/",
				Expires:  time.Now().Add(24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			logger.Info().Str(log.KeySessionID, sessionID.String()).Msg("issued new session")
		}

		logger = logger.With().Str(log.KeySessionID, sessionID.String()).Logger()
		c := common.AttachSessionIDToContext(r.Context(), sessionID)
		c = logger.WithContext(c)
		next.ServeHTTP(w, r.WithContext(c))
	})
}
