package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/recipe-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /api/users/profile/:username.
//
// @Summary      Public user profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  publicProfileResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/users/profile/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.service.PublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicProfileResponse{User: toPublicUser(user)})
}

// Search handles GET /api/users/search.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Param        q      query     string  true   "At least 2 characters"
// @Param        limit  query     int     false  "Max results (default 10, max 50)"
// @Success      200    {object}  searchUsersResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return err
	}

	users, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return err
	}

	out := make([]publicUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toPublicUser(u))
	}
	return c.JSON(http.StatusOK, searchUsersResponse{Count: len(out), Users: out})
}

// Stats handles GET /api/users/stats.
//
// @Summary      Platform statistics
// @Tags         users
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /api/users/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Stats: stats})
}
