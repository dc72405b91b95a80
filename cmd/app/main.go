package main

import (
	"log"

	"Nutripedia-Backend/cmd/config"
	migration "Nutripedia-Backend/cmd/database/migrate"
	"Nutripedia-Backend/internal/utils"
	"Nutripedia-Backend/pkg/item"
)

func main() {
	utils.LoadConfig()

	var itemRepository item.ItemRepository
	switch utils.GetConfig("STORE_BACKEND") {
	case "postgres":
		db, err := config.ConnectDB()
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		itemRepository = item.NewPostgresItemRepository(db)
	default:
		client, err := config.NewDynamoClient()
		if err != nil {
			log.Fatalf("failed to build dynamodb client: %v", err)
		}
		nameIndex := utils.GetConfig("DYNAMO_NAME_INDEX")
		if nameIndex == "" {
			nameIndex = "NameLowercase-index"
		}
		itemRepository = item.NewDynamoItemRepository(client, utils.GetConfig("DYNAMO_TABLE"), nameIndex)
	}

	app, err := config.NewApp(itemRepository)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
