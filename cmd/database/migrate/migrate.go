package migration

import (
	"Pasikuthu/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 backs the donation primary key default
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Errorf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	if err := db.AutoMigrate(&entities.Donation{}); err != nil {
		log.Errorf("Error migrating donation database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
