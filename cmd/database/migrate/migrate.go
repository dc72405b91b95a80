package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"Nutripedia-Backend/pkg/item"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&item.ItemRecord{}); err != nil {
		log.Fatalf("Error migrating item database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
