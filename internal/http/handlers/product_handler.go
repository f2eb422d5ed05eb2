package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopcart/internal/domain"
	applog "shopcart/internal/log"
	"shopcart/internal/services"
	"shopcart/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	products, err := h.Catalog.ListProducts(page, pageSize)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to retrieve products")
	}
	return respondData(c, fiber.StatusOK, "", fiber.Map{"products": products})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.GetProduct(int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		applog.Error(c, "products.get.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to retrieve product")
	}
	if !p.IsActive {
		return respondError(c, fiber.StatusNotFound, "Product not found")
	}
	return respondData(c, fiber.StatusOK, "", fiber.Map{"product": p})
}

type createProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		errs := validate.Errors{}
		errs.Add("body", "The request body is malformed.")
		return respondValidation(c, errs)
	}

	errs := validate.Errors{}
	name, ok := validate.Name(req.Name)
	if !ok {
		errs.Add("name", "The name field is required.")
	}
	if req.Price == nil || req.Price.IsNegative() {
		errs.Add("price", "The price must be a number of at least 0.")
	}
	if req.Stock == nil || *req.Stock < 0 {
		errs.Add("stock", "The stock must be an integer of at least 0.")
	}
	if !errs.Empty() {
		return respondValidation(c, errs)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p, err := h.Catalog.CreateProduct(services.NewProduct{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		IsActive:    active,
	})
	if err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to create product")
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return respondData(c, fiber.StatusCreated, "Product created successfully", fiber.Map{"product": p})
}
