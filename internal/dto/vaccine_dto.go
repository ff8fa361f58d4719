package dto

type VaccineRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	// ApplicationDate is accepted only to be rejected; vaccines are applied
	// through the apply endpoint.
	ApplicationDate *string `json:"applicationDate"`
	ExpirationDate  string  `json:"expirationDate" validate:"omitempty,datetime=2006-01-02"`
}

type VaccineResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	ApplicationDate string `json:"applicationDate,omitempty"`
	ExpirationDate  string `json:"expirationDate,omitempty"`
	Description     string `json:"description,omitempty"`
	AnimalID        uint   `json:"animalId"`
}
