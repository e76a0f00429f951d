package user

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/config"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

// Service delegates every credential flow to the hosted auth collaborator;
// no password ever touches this process beyond pass-through.
type Service struct {
	client *supabase.Client
	cfg    config.Supabase
}

func NewService(client *supabase.Client, cfg config.Supabase) *Service {
	return &Service{client: client, cfg: cfg}
}

func (s *Service) Register(c context.Context, email, password string) (supabase.Session, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, email).
		Str(log.KeyProcess, "registering user").
		Logger()

	logger.Info().Msg("registering user")
	session, err := s.client.SignUp(c, email, password)
	if err != nil {
		err = fmt.Errorf("failed registering user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return supabase.Session{}, err
	}
	logger.Info().Msg("registered user")

	return session, nil
}

func (s *Service) Login(c context.Context, email, password string) (supabase.Session, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, email).
		Str(log.KeyProcess, "logging in").
		Logger()

	logger.Info().Msg("logging in")
	session, err := s.client.SignInWithPassword(c, email, password)
	if err != nil {
		err = fmt.Errorf("failed logging in with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return supabase.Session{}, err
	}
	logger.Info().Msg("logged in")

	return session, nil
}

// RecoverPassword triggers the email-based recovery flow.
func (s *Service) RecoverPassword(c context.Context, email string) error {
	c, span := otel.Tracer.Start(c, "UserService RecoverPassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService RecoverPassword").
		Str(log.KeyEmail, email).
		Str(log.KeyProcess, "requesting password recovery").
		Logger()

	logger.Info().Msg("requesting password recovery")
	err := s.client.ResetPasswordForEmail(c, email, s.cfg.PasswordRedirect)
	if err != nil {
		err = fmt.Errorf("failed requesting password recovery with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("requested password recovery")

	return nil
}

func (s *Service) UpdatePassword(c context.Context, accessToken, newPassword string) error {
	c, span := otel.Tracer.Start(c, "UserService UpdatePassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdatePassword").
		Str(log.KeyProcess, "updating password").
		Logger()

	logger.Info().Msg("updating password")
	err := s.client.UpdatePassword(c, accessToken, newPassword)
	if err != nil {
		err = fmt.Errorf("failed updating password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("updated password")

	return nil
}

func (s *Service) CurrentUser(c context.Context, accessToken string) (supabase.User, error) {
	c, span := otel.Tracer.Start(c, "UserService CurrentUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService CurrentUser").
		Str(log.KeyProcess, "fetching current user").
		Logger()

	logger.Info().Msg("fetching current user")
	usr, err := s.client.AuthenticatedUser(c, accessToken)
	if err != nil {
		err = fmt.Errorf("failed fetching current user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return supabase.User{}, err
	}
	logger.Info().Msg("fetched current user")

	return usr, nil
}
