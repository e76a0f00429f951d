package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is what GoTrue returns from a successful sign-in or sign-up. A
// sign-up that still needs email confirmation has an empty AccessToken.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Client) SignUp(c context.Context, email, password string) (Session, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient SignUp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient SignUp").
		Str(log.KeyEmail, email).
		Logger()

	logger.Info().Msg("signing up")
	session, err := s.postAuth(c, "/auth/v1/signup", credentials{Email: email, Password: password}, "")
	if err != nil {
		err = fmt.Errorf("failed signing up with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	logger.Info().Msg("signed up")

	return session, nil
}

func (s *Client) SignInWithPassword(c context.Context, email, password string) (Session, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient SignInWithPassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient SignInWithPassword").
		Str(log.KeyEmail, email).
		Logger()

	logger.Info().Msg("signing in")
	session, err := s.postAuth(
		c,
		"/auth/v1/token?grant_type=password",
		credentials{Email: email, Password: password},
		"",
	)
	if err != nil {
		err = fmt.Errorf("failed signing in with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	logger.Info().Msg("signed in")

	return session, nil
}

// ResetPasswordForEmail asks the backend to send the recovery email; the link
// in it lands on redirectTo.
func (s *Client) ResetPasswordForEmail(c context.Context, email, redirectTo string) error {
	c, span := otel.Tracer.Start(c, "SupabaseClient ResetPasswordForEmail")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient ResetPasswordForEmail").
		Str(log.KeyEmail, email).
		Logger()

	body := struct {
		Email      string `json:"email"`
		RedirectTo string `json:"redirect_to,omitempty"`
	}{Email: email, RedirectTo: redirectTo}

	logger.Info().Msg("requesting password recovery email")
	_, err := s.postAuth(c, "/auth/v1/recover", body, "")
	if err != nil {
		err = fmt.Errorf("failed requesting password recovery with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("requested password recovery email")

	return nil
}

func (s *Client) UpdatePassword(c context.Context, accessToken, newPassword string) error {
	c, span := otel.Tracer.Start(c, "SupabaseClient UpdatePassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient UpdatePassword").
		Str(log.KeyProcess, "updating password").
		Logger()

	body := struct {
		Password string `json:"password"`
	}{Password: newPassword}
	payload, err := json.Marshal(body)
	if err != nil {
		err = fmt.Errorf("failed marshaling password update with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Msg("updating password")
	req, err := s.newRequest(c, http.MethodPut, "/auth/v1/user", bytes.NewReader(payload), accessToken)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed updating password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = decodeError(resp)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("updated password")

	return nil
}

// AuthenticatedUser fetches the user the access token belongs to.
func (s *Client) AuthenticatedUser(c context.Context, accessToken string) (User, error) {
	c, span := otel.Tracer.Start(c, "SupabaseClient AuthenticatedUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SupabaseClient AuthenticatedUser").
		Str(log.KeyProcess, "fetching user").
		Logger()

	logger.Info().Msg("fetching user")
	req, err := s.newRequest(c, http.MethodGet, "/auth/v1/user", nil, accessToken)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = decodeError(resp)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	user := User{}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		err = fmt.Errorf("failed decoding user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	logger.Info().Msg("fetched user")

	return user, nil
}

func (s *Client) postAuth(
	c context.Context,
	path string,
	body interface{},
	accessToken string,
) (Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Session{}, fmt.Errorf("failed marshaling auth request with error=%w", err)
	}
	req, err := s.newRequest(c, http.MethodPost, path, bytes.NewReader(payload), accessToken)
	if err != nil {
		return Session{}, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("failed calling auth endpoint with error=%w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Session{}, decodeError(resp)
	}
	session := Session{}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("failed decoding auth response with error=%w", err)
	}
	return session, nil
}
