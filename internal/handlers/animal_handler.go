package handlers

import (
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnimalHandler struct {
	animalService *services.AnimalService
}

func NewAnimalHandler(animalService *services.AnimalService) *AnimalHandler {
	return &AnimalHandler{animalService: animalService}
}

// List answers with the owner's full flat list unless a filter or
// paginated=true was sent, in which case it answers with one page.
func (h *AnimalHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	level, err := detailLevel(c, services.DetailBasic)
	if err != nil {
		return respondError(c, err)
	}
	filter, err := animalFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	paginated, err := queryBool(c, "paginated")
	if err != nil {
		return respondError(c, err)
	}

	if !paginated && filter.IsEmpty() {
		animals, err := h.animalService.ListAll(uid, level)
		if err != nil {
			return respondError(c, err)
		}
		return ok(c, fiber.StatusOK, "Animals successfully retrieved", animals)
	}

	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.animalService.List(uid, filter, req, level)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Animals successfully retrieved", page)
}

func animalFilter(c *fiber.Ctx) (services.AnimalFilter, error) {
	var (
		f   services.AnimalFilter
		err error
	)
	f.Name = queryString(c, "name")
	if v, present := query(c, "animalType"); present {
		kind, valid := models.ParseAnimalType(v)
		if !valid {
			return f, services.FieldError("animalType", "Unknown animal type: "+v)
		}
		f.Type = &kind
	}
	if f.Start, err = queryDate(c, "startDate"); err != nil {
		return f, err
	}
	if f.End, err = queryDate(c, "endDate"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *AnimalHandler) ListWithPendingVaccines(c *fiber.Ctx) error {
	level, err := detailLevel(c, services.DetailBasic)
	if err != nil {
		return respondError(c, err)
	}
	return h.pendingVaccines(c, level)
}

// PendingAnimals serves the vaccine-centric listing, always at BASIC.
func (h *AnimalHandler) PendingAnimals(c *fiber.Ctx) error {
	return h.pendingVaccines(c, services.DetailBasic)
}

func (h *AnimalHandler) pendingVaccines(c *fiber.Ctx, level services.DetailLevel) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.animalService.ListWithPendingVaccines(uid, req, level)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Animals with pending vaccines successfully retrieved", page)
}

func (h *AnimalHandler) Get(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	level, err := detailLevel(c, services.DetailFull)
	if err != nil {
		return respondError(c, err)
	}

	animal, err := h.animalService.Get(uid, id, level)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Animal successfully retrieved", animal)
}

func (h *AnimalHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := animalRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	animal, err := h.animalService.Create(uid, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Animal successfully created", animal)
}

func (h *AnimalHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, err := animalRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	animal, err := h.animalService.Update(uid, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Animal successfully updated", animal)
}

func (h *AnimalHandler) Delete(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.animalService.Delete(uid, id); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Animal successfully deleted", nil)
}

func animalRequest(c *fiber.Ctx) (*dto.AnimalRequest, error) {
	var req dto.AnimalRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, services.NewValidationError("Invalid request body")
	}
	req.Notes = sanitize(req.Notes)
	req.Diet = sanitize(req.Diet)
	return &req, nil
}
