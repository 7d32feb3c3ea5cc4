// Command admin_seed bootstraps a fresh deployment: it creates the initial
// super-admin account and the global country/currency catalog. Safe to run
// repeatedly; existing rows are left untouched.
package main

import (
	"log"
	"os"

	"linkpay/internal/config"
	"linkpay/internal/models"
	"linkpay/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var seedCurrencies = []models.Currency{
	{Name: "US Dollar", Code: "USD", Symbol: "$"},
	{Name: "Euro", Code: "EUR", Symbol: "€"},
	{Name: "British Pound", Code: "GBP", Symbol: "£"},
	{Name: "Canadian Dollar", Code: "CAD", Symbol: "$"},
	{Name: "West African CFA Franc", Code: "XOF", Symbol: "CFA"},
}

var seedCountries = []models.Country{
	{Name: "United States", Code: "US", CurrencyCode: "USD"},
	{Name: "Canada", Code: "CA", CurrencyCode: "CAD"},
	{Name: "United Kingdom", Code: "GB", CurrencyCode: "GBP"},
	{Name: "France", Code: "FR", CurrencyCode: "EUR"},
	{Name: "Germany", Code: "DE", CurrencyCode: "EUR"},
	{Name: "Senegal", Code: "SN", CurrencyCode: "XOF"},
	{Name: "Ivory Coast", Code: "CI", CurrencyCode: "XOF"},
}

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seedAdmin(adminEmail, adminPassword)
	seedCatalog()
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Super-admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         "Platform Admin",
		Role:         models.RoleSuperAdmin,
		Status:       "active",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create super-admin user:", err)
	}
	log.Println("Super-admin account created")
}

func seedCatalog() {
	for _, cur := range seedCurrencies {
		var existing models.Currency
		err := repositories.DB.Where("owner_id IS NULL AND code = ?", cur.Code).First(&existing).Error
		if err == nil {
			continue
		}
		cur.Status = models.CatalogStatusActive
		if err := repositories.DB.Create(&cur).Error; err != nil {
			log.Fatalf("Failed to seed currency %s: %v", cur.Code, err)
		}
		log.Printf("Seeded currency %s", cur.Code)
	}

	for _, country := range seedCountries {
		var existing models.Country
		err := repositories.DB.Where("owner_id IS NULL AND code = ?", country.Code).First(&existing).Error
		if err == nil {
			continue
		}
		country.Status = models.CatalogStatusActive
		if err := repositories.DB.Create(&country).Error; err != nil {
			log.Fatalf("Failed to seed country %s: %v", country.Code, err)
		}
		log.Printf("Seeded country %s", country.Code)
	}
}
