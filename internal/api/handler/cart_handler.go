package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// CartHandler serves the menu and the carts.
type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Menu handles GET /allMenus.
//
// @Summary      List the menu
// @Tags         menu
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /allMenus [get]
func (h *CartHandler) Menu(c echo.Context) error {
	items, err := h.carts.ListMenu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// List handles GET /carts?email=.
//
// @Summary      List the caller's cart
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Owner email; must be the caller's own"
// @Success      200    {array}   domain.CartItem
// @Failure      401    {object}  errorEnvelope
// @Failure      403    {object}  errorEnvelope
// @Router       /carts [get]
func (h *CartHandler) List(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	items, err := h.carts.ListCart(c.Request().Context(), caller, c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /carts/:id. An unknown id yields null.
//
// @Summary      Get one cart item
// @Tags         carts
// @Produce      json
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  domain.CartItem
// @Failure      400  {object}  errorEnvelope
// @Router       /carts/{id} [get]
func (h *CartHandler) Get(c echo.Context) error {
	item, err := h.carts.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Add handles POST /carts.
//
// @Summary      Add an item to a cart
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        body  body      addCartItemRequest  true  "Cart item"
// @Success      200   {object}  insertAck
// @Failure      400   {object}  errorEnvelope
// @Router       /carts [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.carts.AddItem(c.Request().Context(), &domain.CartItem{
		Email:      req.Email,
		MenuItemID: req.MenuItemID,
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertAck{Acknowledged: true, InsertedID: id})
}

// Remove handles DELETE /carts/:id.
//
// @Summary      Remove a cart item
// @Tags         carts
// @Produce      json
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  deleteAck
// @Failure      400  {object}  errorEnvelope
// @Router       /carts/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	n, err := h.carts.RemoveItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteAck{Acknowledged: true, DeletedCount: n})
}
