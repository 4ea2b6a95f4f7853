package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// UserHandler serves the user directory.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users. A known email is answered with a notice and
// nothing is inserted.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User profile"
// @Success      200   {object}  insertAck
// @Failure      400   {object}  errorEnvelope
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.users.Register(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Photo:    req.Photo,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if res.Existing {
		return c.JSON(http.StatusOK, messageResponse{Message: "User exist"})
	}
	return c.JSON(http.StatusOK, insertAck{Acknowledged: true, InsertedID: res.InsertedID})
}

// AdminStatus handles GET /users/admin/:email.
//
// @Summary      Check whether the caller is an admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email to check; must be the caller's own"
// @Success      200    {object}  adminResponse
// @Failure      401    {object}  errorEnvelope
// @Router       /users/admin/{email} [get]
func (h *UserHandler) AdminStatus(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	ok, err := h.users.IsAdmin(c.Request().Context(), caller, c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: ok})
}

// Promote handles PATCH /users/admin/:id.
//
// @Summary      Promote a user to admin
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  updateAck
// @Failure      400  {object}  errorEnvelope
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) Promote(c echo.Context) error {
	res, err := h.users.PromoteToAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}
