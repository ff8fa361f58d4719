package dto

type HealthIssueRequest struct {
	Name          string `json:"name" validate:"required,max=150"`
	Description   string `json:"description"`
	DiagnosisDate string `json:"diagnosisDate" validate:"required,datetime=2006-01-02"`
	RecoveryDate  string `json:"recoveryDate" validate:"omitempty,datetime=2006-01-02"`
	Treatment     string `json:"treatment"`
}

type HealthIssueResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	DiagnosisDate string `json:"diagnosisDate,omitempty"`
	RecoveryDate  string `json:"recoveryDate,omitempty"`
	Description   string `json:"description,omitempty"`
	Treatment     string `json:"treatment,omitempty"`
	AnimalID      uint   `json:"animalId"`
}
