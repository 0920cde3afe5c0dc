package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/config"
	"github.com/ShashankBagda/AI-Restaurant/discovery"
	"github.com/ShashankBagda/AI-Restaurant/live"
	"github.com/ShashankBagda/AI-Restaurant/models"
	"github.com/ShashankBagda/AI-Restaurant/router"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)
	seed(db)

	hub := live.NewHub()
	sessions := services.NewSessionService(db, cfg.TokenSecret, cfg.SessionTTL)
	catalog := services.NewCatalogService(db)
	scheduler := services.NewScheduler(db)
	inventory := services.NewInventoryService(db)
	orders := services.NewOrderService(db, catalog, scheduler, inventory, hub)
	recs := services.NewRecommendationService(db, catalog)

	r := router.SetupRouter(router.Deps{
		DB:       db,
		Sessions: sessions,
		Catalog:  catalog,
		Orders:   orders,
		Invent:   inventory,
		Recs:     recs,
		Hub:      hub,
	})

	if err := discovery.Start(cfg.DiscoveryPort, cfg.ServerName, cfg.Port); err != nil {
		utils.ErrorLogger.Errorf("Discovery responder not started: %v", err)
	}

	utils.InfoLogger.Printf("%s listening on port %s", cfg.ServerName, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Payment{},
		&models.Rating{},
		&models.InventoryCounter{},
		&models.Preference{},
		&models.ClientDevice{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seed populates an empty database with the demo accounts and the starter
// menu the bundled clients expect.
func seed(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	users := []struct {
		id, password, role, specialty string
	}{
		{"demo", "demo123", models.RoleCustomer, ""},
		{"admin", "admin123", models.RoleAdmin, ""},
		{"chef1", "chef123", models.RoleStaff, "pizza,drinks"},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to hash seed password: %v", err)
		}
		db.Create(&models.User{
			UserID:    u.id,
			Password:  string(hashed),
			Role:      u.role,
			Specialty: u.specialty,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	menu := []models.MenuItem{
		{ItemID: "margherita", Name: "Margherita Pizza", Price: 250, Tags: "veg", Category: "pizza"},
		{ItemID: "farmhouse", Name: "Farmhouse Pizza", Price: 320, Tags: "veg", Category: "pizza"},
		{ItemID: "pepperoni", Name: "Pepperoni Pizza", Price: 380, Tags: "non-veg,spicy", Category: "pizza"},
		{ItemID: "coke", Name: "Coke", Price: 60, Tags: "veg,cold", Category: "drinks"},
		{ItemID: "lime-soda", Name: "Fresh Lime Soda", Price: 80, Tags: "veg,cold", Category: "drinks"},
		{ItemID: "brownie", Name: "Chocolate Brownie", Price: 140, Tags: "veg,dessert", Category: "desserts"},
	}
	for i := range menu {
		menu[i].CreatedAt = now
		menu[i].UpdatedAt = now
		db.Create(&menu[i])
		db.Create(&models.InventoryCounter{ItemID: menu[i].ItemID, Stock: 50, UpdatedAt: now})
	}

	utils.InfoLogger.Println("Seeded default users and menu.")
}
