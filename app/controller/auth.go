package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	method, _ := service.ParseMethod(req.VerificationMethod)

	logrus.WithFields(logrus.Fields{
		"email":  req.Email,
		"method": method,
	}).Info("Register request received")

	message, err := c.authService.Register(ctx.Request().Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Method:      method,
	})
	if err != nil {
		if errors.Is(err, service.ErrContactTaken) {
			logrus.WithField("email", req.Email).Warn("Register failed: contact already registered")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "phone or email is already registered"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Warn("Register failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		}
		if errors.Is(err, service.ErrDeliveryFailure) {
			logrus.WithError(err).WithField("email", req.Email).Error("Register failed: code delivery error")
			return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Verification code dispatched")
	return ctx.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: message})
}

func (c *AuthController) VerifyOTP(ctx echo.Context) error {
	var req dto.VerifyOTPRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind verify OTP request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Verify OTP validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	code, err := req.Code()
	if err != nil {
		logrus.Debug("Verify OTP failed: non-numeric code")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid OTP format"})
	}

	result, err := c.authService.VerifyOTP(ctx.Request().Context(), req.Email, req.PhoneNumber, code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredOTP) {
			logrus.WithField("email", req.Email).Warn("Verify OTP failed: invalid or expired code")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid or expired OTP"})
		}
		if errors.Is(err, service.ErrContactTaken) {
			logrus.WithField("email", req.Email).Warn("Verify OTP failed: contact already verified")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "phone or email is already registered"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Verify OTP failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("user_id", result.User.ID).Info("Account verified")
	return sendSession(ctx, http.StatusCreated, "account verified successfully", result)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	result, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid email or password"})
		}
		if errors.Is(err, service.ErrAccountNotVerified) {
			logrus.WithField("email", req.Email).Warn("Login failed: account not verified")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "account not verified"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful")
	return sendSession(ctx, http.StatusOK, "logged in successfully", result)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	clearSessionCookie(ctx)
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "logged out"})
}
