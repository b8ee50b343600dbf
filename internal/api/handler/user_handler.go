package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usercore/user-directory/internal/api/metrics"
	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create persists a new user from the request body. The payload is passed to
// the service as-is; the directory performs no shape validation.
func (h *UserHandler) Create(c echo.Context) error {
	var data ports.Document
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.CreateUser(c.Request().Context(), data)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Get returns the user with the given id, or 404 when absent.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	switch {
	case err == nil:
		metrics.UserLookupsTotal.WithLabelValues("found").Inc()
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.UserLookupsTotal.WithLabelValues("missing").Inc()
		return err
	default:
		metrics.UserLookupsTotal.WithLabelValues("error").Inc()
		return err
	}

	return c.JSON(http.StatusOK, user)
}
