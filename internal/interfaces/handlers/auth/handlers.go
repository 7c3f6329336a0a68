package auth

import (
	"context"

	authsvc "gavel-backend/internal/application/auth"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// Register POST /api/v1/auth/register: create account, start session.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req authsvc.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrFieldsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Register(c.Context(), req)
	if err != nil {
		switch err {
		case authsvc.ErrFieldsRequired, authsvc.ErrInvalidUsername, authsvc.ErrInvalidEmail,
			authsvc.ErrWeakPassword, authsvc.ErrPasswordMismatch:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrUsernameTaken, authsvc.ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	h.startSession(c, user.UserID.String(), user.Username, user.Email)
	return response.SuccessCreated(c, "Registration successful", fiber.Map{
		"user": fiber.Map{
			"user_id":  user.UserID.String(),
			"username": user.Username,
			"email":    user.Email,
		},
	}, nil)
}

// Login POST /api/v1/auth/login: authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrFieldsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Login(c.Context(), req)
	if err != nil {
		switch err {
		case authsvc.ErrFieldsRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrInvalidCredential:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	h.startSession(c, user.UserID.String(), user.Username, user.Email)
	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":  user.UserID.String(),
			"username": user.Username,
			"email":    user.Email,
		},
	}, nil)
}

// Me GET /api/v1/auth/me: return current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout: destroy session, remove Redis keys, clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	user, err := authsvc.VerifyUser(middleware.GetUser(c))

	ctx := context.Background()
	if sessionID != "" && h.Rdb != nil {
		if err := h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err(); err != nil {
			log.Error().Err(err).Msg("logout: failed to delete session key")
		}
		if err == nil {
			if err := h.Rdb.SRem(ctx, userSessionsPrefix+user.UserID, sessionID).Err(); err != nil {
				log.Error().Err(err).Msg("logout: failed to remove session from user set")
			}
		}
	}

	middleware.DestroySession(c)
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)
	return response.Success(c, "Logged out", nil, nil)
}

func (h *Handlers) startSession(c *fiber.Ctx, userID, username, email string) {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   userID,
		Username: username,
		Email:    email,
	})
	if h.Rdb != nil {
		if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+userID, sessionID).Err(); err != nil {
			log.Error().Err(err).Msg("auth: failed to track session")
		}
	}
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)
}
