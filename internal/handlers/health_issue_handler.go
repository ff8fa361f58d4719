package handlers

import (
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type HealthIssueHandler struct {
	healthIssueService *services.HealthIssueService
}

func NewHealthIssueHandler(healthIssueService *services.HealthIssueService) *HealthIssueHandler {
	return &HealthIssueHandler{healthIssueService: healthIssueService}
}

func (h *HealthIssueHandler) List(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}

	var filter services.HealthIssueFilter
	filter.Name = queryString(c, "name")
	if filter.Start, err = queryDate(c, "startDate"); err != nil {
		return respondError(c, err)
	}
	if filter.End, err = queryDate(c, "endDate"); err != nil {
		return respondError(c, err)
	}
	paginated, err := queryBool(c, "paginated")
	if err != nil {
		return respondError(c, err)
	}

	if !paginated && filter.IsEmpty() {
		issues, err := h.healthIssueService.ListAll(uid, animalID)
		if err != nil {
			return respondError(c, err)
		}
		return ok(c, fiber.StatusOK, "Health issues successfully retrieved", issues)
	}

	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.healthIssueService.List(uid, animalID, filter, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Health issues successfully retrieved", page)
}

func (h *HealthIssueHandler) Get(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	issue, err := h.healthIssueService.Get(uid, animalID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Health issue successfully retrieved", issue)
}

func (h *HealthIssueHandler) Create(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := healthIssueRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	issue, err := h.healthIssueService.Create(uid, animalID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Health issue successfully created", issue)
}

func (h *HealthIssueHandler) Update(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, err := healthIssueRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	issue, err := h.healthIssueService.Update(uid, animalID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Health issue successfully updated", issue)
}

func (h *HealthIssueHandler) Delete(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.healthIssueService.Delete(uid, animalID, id); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Health issue successfully deleted", nil)
}

func healthIssueRequest(c *fiber.Ctx) (*dto.HealthIssueRequest, error) {
	var req dto.HealthIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, services.NewValidationError("Invalid request body")
	}
	req.Description = sanitize(req.Description)
	req.Treatment = sanitize(req.Treatment)
	return &req, nil
}

// animalScope reads the caller and the animal the nested route points at.
func animalScope(c *fiber.Ctx) (uint, uint, error) {
	uid, err := userID(c)
	if err != nil {
		return 0, 0, err
	}
	animalID, err := pathID(c, "animalId")
	if err != nil {
		return 0, 0, err
	}
	return uid, animalID, nil
}
