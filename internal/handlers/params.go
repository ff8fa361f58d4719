package handlers

import (
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// query tells an absent parameter apart from one sent with an empty value.
func query(c *fiber.Ctx, key string) (string, bool) {
	if !c.Context().QueryArgs().Has(key) {
		return "", false
	}
	return c.Query(key), true
}

func queryString(c *fiber.Ctx, key string) *string {
	v, ok := query(c, key)
	if !ok {
		return nil
	}
	return &v
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	v, ok := query(c, key)
	if !ok {
		return nil, nil
	}
	d, err := models.ParseDay(v)
	if err != nil {
		return nil, services.FieldError(key, "Invalid date, expected YYYY-MM-DD")
	}
	return &d, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	v, ok := query(c, key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, services.FieldError(key, "must be an integer")
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	v, ok := query(c, key)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, services.FieldError(key, "must be true or false")
	}
	return b, nil
}

// pageRequest reads page, size, sortBy and direction. Missing sortBy and
// direction are left empty so each listing applies its own default order.
func pageRequest(c *fiber.Ctx) (services.PageRequest, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return services.PageRequest{}, err
	}
	size, err := queryInt(c, "size", services.DefaultPageSize)
	if err != nil {
		return services.PageRequest{}, err
	}
	return services.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sortBy"),
		Direction: c.Query("direction"),
	}, nil
}

func detailLevel(c *fiber.Ctx, fallback services.DetailLevel) (services.DetailLevel, error) {
	return services.ParseDetailLevel(c.Query("detailLevel"), fallback)
}

func pathID(c *fiber.Ctx, key string) (uint, error) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, services.FieldError(key, "must be a positive integer")
	}
	return uint(id), nil
}

// userID reads the authenticated owner; routes behind JWTProtected always
// carry one.
func userID(c *fiber.Ctx) (uint, error) {
	id, err := identity.GetUserID(c)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
