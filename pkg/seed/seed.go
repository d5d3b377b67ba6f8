package seed

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"majesty_backend/internal/model"
)

// SeedSiteSettings creates the singleton settings row if missing.
func SeedSiteSettings(db *gorm.DB) {
	settings := model.SiteSettings{
		ReceiverEmail:    getEnv("LEAD_RECEIVER_EMAIL", "info@topsqill.com"),
		ReceiverWhatsApp: getEnv("LEAD_RECEIVER_WHATSAPP", ""),
		ContactPhone:     getEnv("SITE_CONTACT_PHONE", ""),
		ContactEmail:     getEnv("SITE_CONTACT_EMAIL", ""),
	}

	var count int64
	db.Model(&model.SiteSettings{}).Count(&count)
	if count > 0 {
		return
	}

	if err := db.Create(&settings).Error; err != nil {
		log.Printf("Error creating site settings: %v", err)
		return
	}

	log.Println("Site settings seeded successfully!")
}

// SeedAdminUser creates the dashboard admin account if missing.
func SeedAdminUser(db *gorm.DB) {
	adminEmail := getEnv("ADMIN_EMAIL", "admin@godrejmajestyofficial.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin user seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	user := model.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Name:     "Admin",
	}

	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}

	log.Println("Admin user seeded successfully!")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
