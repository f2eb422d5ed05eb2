package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopcart/internal/domain"
	applog "shopcart/internal/log"
	"shopcart/internal/services"
	"shopcart/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addToCartRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// failCart translates domain errors into the response taxonomy; anything
// unrecognized is logged and reported with the operation's generic message.
func failCart(c *fiber.Ctx, err error, action, fallback string) error {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		errs := validate.Errors{}
		errs.Add("product_id", "The selected product_id is invalid.")
		return respondValidation(c, errs)
	case errors.Is(err, domain.ErrProductUnavailable):
		return respondError(c, fiber.StatusBadRequest, "Product is not available")
	case errors.As(err, &stockErr):
		return respondError(c, fiber.StatusBadRequest, stockErr.Error())
	case errors.Is(err, domain.ErrCartItemNotFound):
		return respondError(c, fiber.StatusNotFound, "Cart item not found")
	case errors.Is(err, domain.ErrNoActiveCart):
		return respondError(c, fiber.StatusNotFound, "No active cart found")
	default:
		applog.Error(c, action, err, nil)
		return respondError(c, fiber.StatusInternalServerError, fallback)
	}
}

// Add puts quantity of a product into the caller's active cart, merging
// with an existing line for the same product.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		errs := validate.Errors{}
		errs.Add("body", "The request body is malformed.")
		return respondValidation(c, errs)
	}
	errs := validate.Errors{}
	if req.ProductID == nil {
		errs.Add("product_id", "The product_id field is required.")
	}
	qty, ok := validate.Quantity(req.Quantity)
	if !ok {
		if req.Quantity == nil {
			errs.Add("quantity", "The quantity field is required.")
		} else {
			errs.Add("quantity", "The quantity must be at least 1.")
		}
	}
	if !errs.Empty() {
		return respondValidation(c, errs)
	}

	res, err := h.Cart.Add(u.ID, *req.ProductID, qty)
	if err != nil {
		return failCart(c, err, "cart.add.fail", "Failed to add product to cart")
	}

	msg := "Product quantity updated in cart successfully"
	if res.Created {
		msg = "Product added to cart successfully"
	}
	applog.Audit(c, "cart.add", map[string]any{"product_id": *req.ProductID, "qty": qty})
	return respondData(c, fiber.StatusCreated, msg, fiber.Map{
		"cart":      res.Cart,
		"cart_item": res.Item,
	})
}

// View returns the active cart with items and products; users without a
// cart get the empty-cart payload, not an error.
func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)

	cv, err := h.Cart.View(u.ID)
	if err != nil {
		return failCart(c, err, "cart.view.fail", "Failed to retrieve cart")
	}
	if cv.Cart == nil {
		return respondData(c, fiber.StatusOK, "Your cart is empty", fiber.Map{
			"cart":         nil,
			"items":        []domain.CartItem{},
			"total_items":  0,
			"total_amount": "0.00",
		})
	}
	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"cart":         cv.Cart,
		"items":        cv.Items,
		"total_items":  cv.TotalItems,
		"total_amount": cv.TotalAmount,
	})
}

// Update replaces a cart line's quantity.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)

	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "Cart item not found")
	}

	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		errs := validate.Errors{}
		errs.Add("body", "The request body is malformed.")
		return respondValidation(c, errs)
	}
	qty, ok := validate.Quantity(req.Quantity)
	if !ok {
		errs := validate.Errors{}
		if req.Quantity == nil {
			errs.Add("quantity", "The quantity field is required.")
		} else {
			errs.Add("quantity", "The quantity must be at least 1.")
		}
		return respondValidation(c, errs)
	}

	res, err := h.Cart.UpdateItem(u.ID, int64(itemID), qty)
	if err != nil {
		return failCart(c, err, "cart.update.fail", "Failed to update cart item")
	}
	applog.Audit(c, "cart.update", map[string]any{"item_id": itemID, "qty": qty})
	return respondData(c, fiber.StatusOK, "Cart item updated successfully", fiber.Map{
		"cart":      res.Cart,
		"cart_item": res.Item,
	})
}

// Remove deletes one cart line.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)

	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "Cart item not found")
	}

	cart, err := h.Cart.RemoveItem(u.ID, int64(itemID))
	if err != nil {
		return failCart(c, err, "cart.remove.fail", "Failed to remove cart item")
	}
	applog.Audit(c, "cart.remove", map[string]any{"item_id": itemID})
	return respondData(c, fiber.StatusOK, "Item removed from cart successfully", fiber.Map{
		"cart": cart,
	})
}

// Clear empties the active cart; the cart row itself survives with a zero
// total.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	u := currentUser(c)

	cart, err := h.Cart.Clear(u.ID)
	if err != nil {
		return failCart(c, err, "cart.clear.fail", "Failed to clear cart")
	}
	applog.Audit(c, "cart.clear", map[string]any{"cart_id": cart.ID})
	return respondData(c, fiber.StatusOK, "Cart cleared successfully", fiber.Map{
		"cart": cart,
	})
}

// Count returns the line count and summed quantity, for badge displays.
func (h *CartHandler) Count(c *fiber.Ctx) error {
	u := currentUser(c)

	count, totalItems, err := h.Cart.Count(u.ID)
	if err != nil {
		return failCart(c, err, "cart.count.fail", "Failed to get cart count")
	}
	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"count":       count,
		"total_items": totalItems,
	})
}
