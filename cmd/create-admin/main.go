package main

import (
	"flag"
	"log"

	"go-skystore/internal/config"
	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/pkg/database"

	"github.com/google/uuid"
)

// Bootstrap or reset the admin account outside the API process.
func main() {
	cfg := config.Load()

	email := flag.String("email", cfg.Admin.Email, "admin email")
	password := flag.String("password", cfg.Admin.Password, "admin password")
	flag.Parse()

	db := database.ConnectDB()

	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.Fatalf("ADMIN role not found, run the API once to seed roles: %v", err)
	}

	if existing, err := userRepo.FindByEmail(*email); err == nil {
		// Account exists, reset the password
		if err := resetAccount(existing, *password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Update(existing); err != nil {
			log.Fatalf("Failed to update password: %v", err)
		}
		log.Printf("Password for %s has been reset, open sessions invalidated", *email)
		return
	}

	admin := &model.User{
		Email:       *email,
		FirstName:   "Admin",
		RoleID:      &adminRole.ID,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
		Privileges:  adminRole.Privileges,
	}
	if err := admin.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s (ADMIN)", *email)
}

// resetAccount re-hashes the password and rotates the token version so
// sessions opened before the reset stop validating
func resetAccount(user *model.User, password string) error {
	if err := user.SetPassword(password); err != nil {
		return err
	}
	user.TokenVersion = uuid.New().String()
	return nil
}
