package catalog

import (
	"errors"

	catsvc "gavel-backend/internal/application/catalog"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *catsvc.Service
}

type createRequest struct {
	Name string `json:"name"`
}

// GetCategories GET /api/v1/catalog/categories.
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	data, err := h.Service.ListCategories(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Categories fetched successfully", data, nil)
}

// GetBrands GET /api/v1/catalog/brands.
func (h *Handlers) GetBrands(c *fiber.Ctx) error {
	data, err := h.Service.ListBrands(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Brands fetched successfully", data, nil)
}

// GetModels GET /api/v1/catalog/models.
func (h *Handlers) GetModels(c *fiber.Ctx) error {
	data, err := h.Service.ListModels(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Models fetched successfully", data, nil)
}

// CreateCategory POST /api/v1/catalog/categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	name, errResp := parseName(c)
	if errResp != nil {
		return errResp
	}
	data, err := h.Service.CreateCategory(c.Context(), name)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return response.SuccessCreated(c, "Category created successfully", data, nil)
}

// CreateBrand POST /api/v1/catalog/brands.
func (h *Handlers) CreateBrand(c *fiber.Ctx) error {
	name, errResp := parseName(c)
	if errResp != nil {
		return errResp
	}
	data, err := h.Service.CreateBrand(c.Context(), name)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return response.SuccessCreated(c, "Brand created successfully", data, nil)
}

// CreateModel POST /api/v1/catalog/models.
func (h *Handlers) CreateModel(c *fiber.Ctx) error {
	name, errResp := parseName(c)
	if errResp != nil {
		return errResp
	}
	data, err := h.Service.CreateModel(c.Context(), name)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return response.SuccessCreated(c, "Model created successfully", data, nil)
}

func parseName(c *fiber.Ctx) (string, error) {
	var body createRequest
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return "", response.Error(c, "Name is required", fiber.StatusBadRequest, nil)
	}
	return body.Name, nil
}

func mapCatalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catsvc.ErrNameRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, catsvc.ErrDuplicate):
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
