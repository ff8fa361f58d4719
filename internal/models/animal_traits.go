package models

// Traits holds the variant-specific columns of every animal type. Only the
// fields belonging to the record's AnimalType are meaningful.
type Traits struct {
	Breed                   string   `gorm:"size:100" json:"breed,omitempty"`
	Size                    string   `gorm:"size:50" json:"size,omitempty"`
	CoatType                string   `gorm:"size:50" json:"coat_type,omitempty"`
	Pedigree                bool     `gorm:"not null;default:false" json:"pedigree"`
	IndoorOnly              bool     `gorm:"not null;default:false" json:"indoor_only"`
	Species                 string   `gorm:"size:100" json:"species,omitempty"`
	ClippedWings            bool     `gorm:"not null;default:false" json:"clipped_wings"`
	TalkingAbility          bool     `gorm:"not null;default:false" json:"talking_ability"`
	HabitatType             string   `gorm:"size:100" json:"habitat_type,omitempty"`
	TemperatureRequirements string   `gorm:"size:100" json:"temperature_requirements,omitempty"`
	Venomous                bool     `gorm:"not null;default:false" json:"venomous"`
	WaterType               string   `gorm:"size:50" json:"water_type,omitempty"`
	WaterTemperature        *float64 `json:"water_temperature,omitempty"`
	PhLevel                 *float64 `json:"ph_level,omitempty"`
	SocialBehavior          string   `gorm:"size:100" json:"social_behavior,omitempty"`
	CageTrained             bool     `gorm:"not null;default:false" json:"cage_trained"`
	LifespanYears           *int     `json:"lifespan_years,omitempty"`
	TeethCondition          string   `gorm:"size:100" json:"teeth_condition,omitempty"`
}

// For keeps only the fields that belong to kind and zeroes the rest.
func (t Traits) For(kind AnimalType) Traits {
	var out Traits
	switch kind {
	case AnimalTypeDog:
		out.Breed, out.Size, out.CoatType, out.Pedigree = t.Breed, t.Size, t.CoatType, t.Pedigree
	case AnimalTypeCat:
		out.Breed, out.CoatType, out.IndoorOnly = t.Breed, t.CoatType, t.IndoorOnly
	case AnimalTypeBird:
		out.Species, out.ClippedWings, out.TalkingAbility = t.Species, t.ClippedWings, t.TalkingAbility
	case AnimalTypeReptile:
		out.Species, out.HabitatType, out.TemperatureRequirements, out.Venomous =
			t.Species, t.HabitatType, t.TemperatureRequirements, t.Venomous
	case AnimalTypeFish:
		out.Species, out.WaterType, out.WaterTemperature, out.PhLevel, out.SocialBehavior =
			t.Species, t.WaterType, t.WaterTemperature, t.PhLevel, t.SocialBehavior
	case AnimalTypeRodent:
		out.Species, out.CageTrained, out.LifespanYears, out.TeethCondition =
			t.Species, t.CageTrained, t.LifespanYears, t.TeethCondition
	}
	return out
}

// Fields maps the attributes of kind by their JSON field name. Empty strings
// and missing numbers are left out; flags are always present.
func (t Traits) Fields(kind AnimalType) map[string]any {
	f := fieldSet{}
	switch kind {
	case AnimalTypeDog:
		f.str("breed", t.Breed).str("size", t.Size).str("coatType", t.CoatType).flag("pedigree", t.Pedigree)
	case AnimalTypeCat:
		f.str("breed", t.Breed).str("coatType", t.CoatType).flag("indoorOnly", t.IndoorOnly)
	case AnimalTypeBird:
		f.str("species", t.Species).flag("clippedWings", t.ClippedWings).flag("talkingAbility", t.TalkingAbility)
	case AnimalTypeReptile:
		f.str("species", t.Species).str("habitatType", t.HabitatType).
			str("temperatureRequirements", t.TemperatureRequirements).flag("venomous", t.Venomous)
	case AnimalTypeFish:
		f.str("species", t.Species).str("waterType", t.WaterType).num("waterTemperature", t.WaterTemperature).
			num("phLevel", t.PhLevel).str("socialBehavior", t.SocialBehavior)
	case AnimalTypeRodent:
		f.str("species", t.Species).flag("cageTrained", t.CageTrained)
		if t.LifespanYears != nil {
			f["lifespanYears"] = *t.LifespanYears
		}
		f.str("teethCondition", t.TeethCondition)
	}
	return f
}

type fieldSet map[string]any

func (f fieldSet) str(key, v string) fieldSet {
	if v != "" {
		f[key] = v
	}
	return f
}

func (f fieldSet) flag(key string, v bool) fieldSet {
	f[key] = v
	return f
}

func (f fieldSet) num(key string, v *float64) fieldSet {
	if v != nil {
		f[key] = *v
	}
	return f
}
