package handlers

import (
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VaccineHandler struct {
	vaccineService *services.VaccineService
}

func NewVaccineHandler(vaccineService *services.VaccineService) *VaccineHandler {
	return &VaccineHandler{vaccineService: vaccineService}
}

func (h *VaccineHandler) List(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}

	var filter services.VaccineFilter
	if filter.DateType, err = services.ParseVaccineDateType(c.Query("dateType")); err != nil {
		return respondError(c, err)
	}
	if filter.Start, err = queryDate(c, "startDate"); err != nil {
		return respondError(c, err)
	}
	if filter.End, err = queryDate(c, "endDate"); err != nil {
		return respondError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.vaccineService.List(uid, animalID, filter, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Vaccine history successfully retrieved", page)
}

func (h *VaccineHandler) ListNonExpired(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.vaccineService.ListNonExpired(uid, animalID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Non-expired vaccines successfully retrieved", page)
}

func (h *VaccineHandler) ListConfirmed(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.vaccineService.ListConfirmed(uid, animalID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Applied vaccines successfully retrieved", page)
}

func (h *VaccineHandler) Get(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	vaccine, err := h.vaccineService.Get(uid, animalID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Vaccine successfully retrieved", vaccine)
}

func (h *VaccineHandler) Create(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := vaccineRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	vaccine, err := h.vaccineService.Create(uid, animalID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Vaccine successfully created", vaccine)
}

func (h *VaccineHandler) Update(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, err := vaccineRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	vaccine, err := h.vaccineService.Update(uid, animalID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Vaccine successfully updated", vaccine)
}

func (h *VaccineHandler) Apply(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	vaccine, err := h.vaccineService.Apply(uid, animalID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Vaccine successfully applied", vaccine)
}

func (h *VaccineHandler) Delete(c *fiber.Ctx) error {
	uid, animalID, err := animalScope(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.vaccineService.Delete(uid, animalID, id); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Vaccine successfully deleted", nil)
}

func vaccineRequest(c *fiber.Ctx) (*dto.VaccineRequest, error) {
	var req dto.VaccineRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, services.NewValidationError("Invalid request body")
	}
	req.Description = sanitize(req.Description)
	return &req, nil
}
