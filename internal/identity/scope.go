package identity

import "gorm.io/gorm"

// OwnedBy returns a GORM scope that limits animals to one owner.
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("animals.owner_id = ?", userID)
	}
}

// OfAnimal returns a GORM scope for rows that belong to one animal.
func OfAnimal(animalID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("animal_id = ?", animalID)
	}
}
