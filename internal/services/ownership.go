package services

import (
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findOwnedAnimal loads an animal only if userID owns it. Inside a
// transaction the check and the following write see the same snapshot.
func findOwnedAnimal(db *gorm.DB, userID, animalID uint) (*models.Animal, error) {
	var animal models.Animal
	err := db.Scopes(identity.OwnedBy(userID)).Where("animals.id = ?", animalID).First(&animal).Error
	if err != nil {
		return nil, notFound(err, "Animal", animalID)
	}
	return &animal, nil
}

func findVaccine(db *gorm.DB, animalID, vaccineID uint) (*models.Vaccine, error) {
	var vaccine models.Vaccine
	err := db.Scopes(identity.OfAnimal(animalID)).Where("id = ?", vaccineID).First(&vaccine).Error
	if err != nil {
		return nil, notFound(err, "Vaccine", vaccineID)
	}
	return &vaccine, nil
}

func findHealthIssue(db *gorm.DB, animalID, issueID uint) (*models.HealthIssue, error) {
	var issue models.HealthIssue
	err := db.Scopes(identity.OfAnimal(animalID)).Where("id = ?", issueID).First(&issue).Error
	if err != nil {
		return nil, notFound(err, "HealthIssue", issueID)
	}
	return &issue, nil
}

// updateAll writes every column of an existing row. Unlike Save it never
// falls back to an insert when the row has gone away.
func updateAll(tx *gorm.DB, model any) error {
	res := tx.Model(model).Select("*").Omit(clause.Associations, "created_at").Updates(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
