package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/utils"
)

// Creates the schema and a demo admin + intern for local development.
func main() {
	dsn := os.Getenv("DSN")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	models := []interface{}{
		&model.User{},
		&model.TimeLog{},
		&model.EditRequest{},
		&model.Certificate{},
		&model.ImportBatch{},
		&model.Holiday{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			if err := db.Migrator().CreateTable(m); err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	internHash, _ := bcrypt.GenerateFromPassword([]byte("intern1234"), bcrypt.DefaultCost)

	users := []model.User{
		{
			Email:        "admin@internhq.local",
			PasswordHash: string(adminHash),
			FirstName:    "Dev",
			LastName:     "Admin",
			Role:         model.RoleAdmin,
			Status:       model.UserActive,
		},
		{
			Email:         "intern@internhq.local",
			PasswordHash:  string(internHash),
			FirstName:     "Demo",
			LastName:      "Intern",
			Role:          model.RoleIntern,
			School:        "Technological Institute",
			Supervisor:    "Dev Admin",
			BadgeTag:      utils.Ptr("BADGE-0001"),
			RequiredHours: 500,
			Status:        model.UserActive,
		},
	}

	for _, u := range users {
		var count int64
		db.Model(&model.User{}).Where("email = ?", u.Email).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
		log.Printf("created %s", u.Email)
	}
}
