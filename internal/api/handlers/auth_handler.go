package handlers

import (
	"Pasikuthu/domain"
	"Pasikuthu/internal/api/presenters"
	"Pasikuthu/pkg/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		SendOtp(c *fiber.Ctx) error
		VerifyOtp(c *fiber.Ctx) error
		SignOut(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
	}

	authHandler struct {
		authService auth.AuthService
		validator   *validator.Validate
	}
)

func NewAuthHandler(authService auth.AuthService, validator *validator.Validate) AuthHandler {
	return &authHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *authHandler) SendOtp(c *fiber.Ctx) error {
	var req domain.SendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendOtp, domain.ErrInvalidEmail)
	}

	if err := h.authService.SignInWithOtp(c.Context(), req.Email); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedSendOtp, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendOtp)
}

func (h *authHandler) VerifyOtp(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyOtp, domain.ErrTokenInvalid)
	}

	session, err := h.authService.VerifyOtp(c.Context(), token)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedVerifyOtp, err)
	}
	return presenters.SuccessResponse(c, session, fiber.StatusOK, domain.MessageSuccessVerifyOtp)
}

func (h *authHandler) SignOut(c *fiber.Ctx) error {
	if err := h.authService.SignOut(c.Context()); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedSignOut, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignOut)
}

func (h *authHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.authService.GetSession(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedProcessRequest, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"session": session,
	}, fiber.StatusOK, domain.MessageSuccessGetSession)
}
