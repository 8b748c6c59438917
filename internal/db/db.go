package db

import (
	"log"

	"examprep/internal/config"
	"examprep/internal/goal"
	"examprep/internal/plan"
	"examprep/internal/user"
	"examprep/internal/vocab"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate user model
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	// Auto-migrate study goals and plans
	if err := db.AutoMigrate(&goal.Goal{}, &plan.StudyPlan{}); err != nil {
		return err
	}

	// Auto-migrate vocabulary models
	if err := db.AutoMigrate(&vocab.Word{}, &vocab.Review{}); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}
