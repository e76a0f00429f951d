package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common"
	inErrors "github.com/angel343234/Isa-Crochet-shop-platform/internal/common/errors"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/validate"
	inHttp "github.com/angel343234/Isa-Crochet-shop-platform/internal/http"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/user"
	"github.com/angel343234/Isa-Crochet-shop-platform/pkg/request"
)

type UserController struct {
	service *user.Service
}

// AttachUserController mounts the open auth endpoints on mux and the
// token-protected ones on authed.
func AttachUserController(mux *mux.Router, authed *mux.Router, service *user.Service) {
	controller := UserController{service: service}

	router := mux.PathPrefix("/auth").Subrouter()
	router.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
	router.HandleFunc("/recover", controller.Recover).Methods(http.MethodPost)

	authed.HandleFunc("/password", controller.UpdatePassword).Methods(http.MethodPost)
	authed.HandleFunc("/me", controller.Me).Methods(http.MethodGet)
}

func (t UserController) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Register").
		Logger()

	reqBody := request.Register{}
	if ok := decodeAndValidate(c, w, r, &reqBody, logger); !ok {
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "registering").
		Str(log.KeyEmail, reqBody.Email).
		Logger()
	logger.Info().Msg("registering")
	c = logger.WithContext(c)
	session, err := t.service.Register(c, reqBody.Email, reqBody.Password)
	if err != nil {
		err = fmt.Errorf("failed registering with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("registered")

	// A sign-up pending email confirmation has no session yet.
	message := "registered"
	if session.AccessToken == "" {
		message = "registered, please confirm your email"
	}
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       session,
	})
}

func (t UserController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Login").
		Logger()

	reqBody := request.Login{}
	if ok := decodeAndValidate(c, w, r, &reqBody, logger); !ok {
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "logging in").
		Str(log.KeyEmail, reqBody.Email).
		Logger()
	logger.Info().Msg("logging in")
	c = logger.WithContext(c)
	session, err := t.service.Login(c, reqBody.Email, reqBody.Password)
	if err != nil {
		err = fmt.Errorf("failed logging in with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("logged in")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "logged in",
		"data":       session,
	})
}

func (t UserController) Recover(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Recover")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Recover").
		Logger()

	reqBody := request.RecoverPassword{}
	if ok := decodeAndValidate(c, w, r, &reqBody, logger); !ok {
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "requesting password recovery").
		Str(log.KeyEmail, reqBody.Email).
		Logger()
	logger.Info().Msg("requesting password recovery")
	c = logger.WithContext(c)
	if err := t.service.RecoverPassword(c, reqBody.Email); err != nil {
		err = fmt.Errorf("failed requesting password recovery with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("requested password recovery")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "recovery email sent",
	})
}

func (t UserController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdatePassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController UpdatePassword").
		Logger()

	reqBody := request.UpdatePassword{}
	if ok := decodeAndValidate(c, w, r, &reqBody, logger); !ok {
		return
	}

	accessToken := common.AccessTokenFromContext(c)
	if accessToken == "" {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating password").Logger()
	logger.Info().Msg("updating password")
	c = logger.WithContext(c)
	if err := t.service.UpdatePassword(c, accessToken, reqBody.Password); err != nil {
		err = fmt.Errorf("failed updating password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated password")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "password updated",
	})
}

func (t UserController) Me(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Me")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Me").
		Logger()

	accessToken := common.AccessTokenFromContext(c)
	if accessToken == "" {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	usr, err := t.service.CurrentUser(c, accessToken)
	if err != nil {
		err = fmt.Errorf("failed fetching current user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found current user",
		"data":       usr,
	})
}

func decodeAndValidate(
	c context.Context,
	w http.ResponseWriter,
	r *http.Request,
	reqBody interface{},
	logger zerolog.Logger,
) bool {
	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	if err := json.NewDecoder(r.Body).Decode(reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return false
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.New().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return false
	}
	logger.Info().Msg("validated request body")

	return true
}
