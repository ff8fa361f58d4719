package dto

// AnimalRequest carries the common fields plus every variant-specific field.
// Only the fields of the selected animalType are stored.
type AnimalRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	BirthDate     string   `json:"birthDate" validate:"required,datetime=2006-01-02"`
	WeightKg      *float64 `json:"weightKg" validate:"omitempty,gt=0"`
	Color         string   `json:"color" validate:"max=50"`
	Gender        string   `json:"gender" validate:"required,max=20"`
	Notes         string   `json:"notes"`
	Diet          string   `json:"diet"`
	Neutered      bool     `json:"neutered"`
	LastDeworming string   `json:"lastDeworming" validate:"omitempty,datetime=2006-01-02"`
	AnimalType    string   `json:"animalType" validate:"required,animaltype"`

	Breed    string `json:"breed" validate:"max=100"`
	Size     string `json:"size" validate:"max=50"`
	CoatType string `json:"coatType" validate:"max=50"`
	Pedigree bool   `json:"pedigree"`

	IndoorOnly bool `json:"indoorOnly"`

	Species        string `json:"species" validate:"max=100"`
	ClippedWings   bool   `json:"clippedWings"`
	TalkingAbility bool   `json:"talkingAbility"`

	HabitatType             string `json:"habitatType" validate:"max=100"`
	TemperatureRequirements string `json:"temperatureRequirements" validate:"max=100"`
	Venomous                bool   `json:"venomous"`

	WaterType        string   `json:"waterType" validate:"max=50"`
	WaterTemperature *float64 `json:"waterTemperature"`
	PhLevel          *float64 `json:"phLevel" validate:"omitempty,gte=0,lte=14"`
	SocialBehavior   string   `json:"socialBehavior" validate:"max=100"`

	CageTrained    bool   `json:"cageTrained"`
	LifespanYears  *int   `json:"lifespanYears" validate:"omitempty,gt=0"`
	TeethCondition string `json:"teethCondition" validate:"max=100"`
}

// AnimalResponse is the projection of an animal at a detail level. Fields
// outside the requested level are left zero and omitted from the JSON.
type AnimalResponse struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	BirthDate        string                `json:"birthDate,omitempty"`
	RegistrationDate string                `json:"registrationDate,omitempty"`
	WeightKg         *float64              `json:"weightKg,omitempty"`
	Color            string                `json:"color,omitempty"`
	Gender           string                `json:"gender,omitempty"`
	AnimalType       string                `json:"animalType"`
	AgeYears         *int                  `json:"ageYears,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Diet             string                `json:"diet,omitempty"`
	Neutered         *bool                 `json:"neutered,omitempty"`
	LastDeworming    string                `json:"lastDeworming,omitempty"`
	Owner            *UserResponse         `json:"owner,omitempty"`
	HealthIssues     []HealthIssueResponse `json:"healthIssues,omitempty"`
	SpecificFields   map[string]any        `json:"specificFields,omitempty"`
}
