package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) Me(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	user, err := c.userService.GetUser(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Get user failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.UserResponse{Success: true, User: dto.NewUserPayload(user)})
}

func (c *UserController) UpdateProfile(ctx echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update profile request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Update profile validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	user, err := c.userService.UpdateProfile(ctx.Request().Context(), userID, req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "user not found"})
		}
		if errors.Is(err, service.ErrContactTaken) {
			logrus.WithField("user_id", userID).Warn("Update profile failed: contact already registered")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "phone or email is already registered"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Update profile failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Profile updated")
	return ctx.JSON(http.StatusOK, dto.UserResponse{Success: true, User: dto.NewUserPayload(user)})
}
