package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/service"
)

type PasswordController struct {
	passwordService service.PasswordService
}

func NewPasswordController(passwordService service.PasswordService) *PasswordController {
	return &PasswordController{passwordService: passwordService}
}

func (c *PasswordController) ForgotPassword(ctx echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind forgot password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Forgot password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Password reset requested")
	message, err := c.passwordService.ForgotPassword(ctx.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Forgot password failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
		}
		if errors.Is(err, service.ErrDeliveryFailure) {
			logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed: email delivery error")
			return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Password reset email sent")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: message})
}

func (c *PasswordController) ResetPassword(ctx echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Reset password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	token := ctx.Param("token")

	result, err := c.passwordService.ResetPassword(ctx.Request().Context(), token, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			logrus.Warn("Reset password failed: invalid or expired token")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "reset password token is invalid or has expired"})
		}
		if errors.Is(err, service.ErrPasswordConfirmMismatch) {
			logrus.Warn("Reset password failed: confirmation mismatch")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "password does not match"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.Warn("Reset password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		}
		logrus.WithError(err).Error("Reset password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("user_id", result.User.ID).Info("Password reset successful")
	return sendSession(ctx, http.StatusOK, "password reset successfully", result)
}

func (c *PasswordController) UpdatePassword(ctx echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Update password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Update password failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	result, err := c.passwordService.UpdatePassword(ctx.Request().Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Update password failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
		}
		if errors.Is(err, service.ErrPasswordMismatch) {
			logrus.WithField("user_id", userID).Warn("Update password failed: old password mismatch")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "old password is incorrect"})
		}
		if errors.Is(err, service.ErrPasswordConfirmMismatch) {
			logrus.WithField("user_id", userID).Warn("Update password failed: confirmation mismatch")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "password does not match"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("user_id", userID).Warn("Update password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Update password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Password updated")
	return sendSession(ctx, http.StatusOK, "password updated successfully", result)
}
