package database

import (
	"errors"

	"gorm.io/gorm"

	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/models"
)

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.Pipeline{},
		&models.Custom{},
		&models.AllowedFileType{},
		&models.MetadataFormField{},
		&models.FieldOption{},
		&models.Workflow{},
		&models.Upload{},
		&models.FileUpload{},
		&models.MetadataValue{},
		&models.UploadValidation{},
		&models.Note{},
	)
}

// SeedGroups ensures the two well-known groups exist. Validator gates
// the review worklist, Automation the bulk read surface.
func SeedGroups(db *gorm.DB) error {
	for _, name := range []string{models.GroupValidator, models.GroupAutomation} {
		var group models.Group
		err := db.Where("name = ?", name).First(&group).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Group{Name: name}).Error; err != nil {
			return err
		}
		logger.Info("seeded group", "name", name)
	}
	return nil
}
