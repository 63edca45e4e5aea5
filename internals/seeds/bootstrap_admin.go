// file: internals/seeds/bootstrap_admin.go
package seeds

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edutrack_backend/internals/configs"
	"edutrack_backend/internals/constants"
	userModel "edutrack_backend/internals/features/users/user/model"
)

// SeedBootstrapAdmin inserts the first super-admin account when the env
// vars are set and the email is not taken. Safe to run on every boot.
func SeedBootstrapAdmin(db *gorm.DB) {
	email := strings.ToLower(strings.TrimSpace(configs.GetEnv("BOOTSTRAP_ADMIN_EMAIL")))
	password := configs.GetEnv("BOOTSTRAP_ADMIN_PASSWORD")
	name := strings.TrimSpace(configs.GetEnv("BOOTSTRAP_ADMIN_NAME", "Super Admin"))
	schoolIDRaw := strings.TrimSpace(configs.GetEnv("BOOTSTRAP_SCHOOL_ID"))

	if email == "" || password == "" || schoolIDRaw == "" {
		log.Println("[INFO] bootstrap admin env not set, skipping seed")
		return
	}
	schoolID, err := uuid.Parse(schoolIDRaw)
	if err != nil {
		log.Printf("[WARN] BOOTSTRAP_SCHOOL_ID is not a UUID, skipping seed: %v", err)
		return
	}

	var existing userModel.UserModel
	err = db.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("[INFO] bootstrap admin '%s' already exists, skipping", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] bootstrap admin lookup failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] bootstrap admin password hash failed: %v", err)
		return
	}

	admin := userModel.UserModel{
		ID:       uuid.New(),
		SchoolID: schoolID,
		FullName: name,
		Email:    email,
		Password: string(hashed),
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] bootstrap admin insert failed: %v", err)
		return
	}
	log.Printf("[INFO] bootstrap admin '%s' created", email)
}

// RunAllSeeds is the single entrypoint main calls on boot.
func RunAllSeeds(db *gorm.DB) {
	SeedBootstrapAdmin(db)
}
