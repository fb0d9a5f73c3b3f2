// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	"membership_backend/internal/feature/auth/domain/entity"
	"membership_backend/internal/feature/auth/transport/http/dto"
	"membership_backend/internal/feature/auth/usecase"
	jwtmw "membership_backend/internal/platform/jwt"
)

// AuthUsecase defines the usecase interface for authentication operations.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type AuthUsecase interface {
	// Login authenticates a member account and returns a JWT and role.
	Login(ctx context.Context, email, password string) (string, string, error)
	// AdminLogin authenticates the fixed admin credentials and returns a JWT.
	AdminLogin(ctx context.Context, email, password string) (string, error)
	// CurrentAccount returns the account for the authenticated caller.
	CurrentAccount(ctx context.Context, id uint) (*entity.Account, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles member login.
// - binds the request JSON to LoginReq, 400 on validation failure
// - 401 with a generic message on authentication failure
// - 200 with a signed JWT and role on success
//
// Endpoint: POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, role, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Generic message to prevent account enumeration.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, Role: role})
}

// AdminLogin handles administrator login against the fixed env credentials.
//
// Endpoint: POST /admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("admin login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("admin login failed", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid admin credentials"})
		return
	}
	slog.Info("admin login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, Role: entity.RoleAdmin})
}

// Me returns the authenticated caller's account.
//
// Endpoint: GET /auth/me (authenticated)
func (h *AuthHandler) Me(c *gin.Context) {
	id := c.GetUint(jwtmw.ContextUserID)
	if id == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
		return
	}
	account, err := h.auth.CurrentAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "account not found"})
			return
		}
		slog.Error("current account lookup failed", "error", err, "account_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load account"})
		return
	}
	c.JSON(http.StatusOK, api.AccountResponse{
		ID:               account.ID,
		Name:             account.Name,
		Email:            account.Email,
		Role:             account.Role,
		MembershipStatus: account.MembershipStatus,
	})
}
