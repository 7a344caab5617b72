// Command seed migrates the schema and inserts the default categories and
// the initial super admin account.
package main

import (
	"log"

	"society-intake-api/config"
	"society-intake-api/models"

	"github.com/joho/godotenv"
)

var defaultCategories = []models.Category{
	{Name: "Housing Project", Description: "Applications for housing assistance and development projects", IsActive: true},
	{Name: "Tube Well Project", Description: "Applications for tube well installation and water supply projects", IsActive: true},
	{Name: "Education Support", Description: "Applications for educational assistance and scholarship programs", IsActive: true},
	{Name: "Healthcare Support", Description: "Applications for healthcare assistance and medical support", IsActive: true},
	{Name: "Agricultural Support", Description: "Applications for agricultural development and farming assistance", IsActive: true},
	{Name: "Small Business Support", Description: "Applications for small business development and microfinance", IsActive: true},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Application{},
		&models.Admin{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	var categoryCount int64
	if err := config.DB.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		log.Fatal("Failed to count categories:", err)
	}
	if categoryCount == 0 {
		if err := config.DB.Create(&defaultCategories).Error; err != nil {
			log.Fatal("Failed to seed categories:", err)
		}
		log.Println("Default categories created")
	}

	var adminCount int64
	if err := config.DB.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		log.Fatal("Failed to count admins:", err)
	}
	if adminCount == 0 {
		admin := models.Admin{
			Email:        "admin@statebd.org",
			FullName:     "System Administrator",
			IsActive:     true,
			IsSuperAdmin: true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Fatal("Failed to hash default password:", err)
		}
		if err := config.DB.Create(&admin).Error; err != nil {
			log.Fatal("Failed to seed admin:", err)
		}
		log.Println("Default admin user created (admin@statebd.org). Change the password after first login.")
	}

	log.Println("Database initialization completed successfully")
}
