// Command seed loads the park's reference data and, optionally, a batch of
// fake visitor accounts for local testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"infinity-park/internal/auth"
	"infinity-park/internal/client"
	"infinity-park/internal/config"
	"infinity-park/internal/dto"
	"infinity-park/internal/logger"
	"infinity-park/internal/repository"
	"infinity-park/internal/service"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

func main() {
	visitors := flag.Int("visitors", 0, "number of fake visitor accounts to create")
	password := flag.String("password", "visitor123", "password for the fake visitors")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	ctx := context.Background()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.WithError(err).Error("database init failed")
		os.Exit(1)
	}

	if err := repository.NewSeedRepository(db).Seed(ctx); err != nil {
		log.WithError(err).Error("seeding reference data failed")
		os.Exit(1)
	}
	log.Info("reference data seeded")

	authService := service.NewAuthService(db, repository.NewUserRepository(db), auth.NewTokens("seed", 0), cfg.Auth.BcryptCost)
	if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.WithError(err).Error("ensure admin account failed")
		os.Exit(1)
	}

	created := 0
	for i := 0; i < *visitors; i++ {
		user, err := authService.Register(ctx, dto.RegisterRequest{
			Username:        gofakeit.Username() + gofakeit.DigitN(3),
			Email:           gofakeit.Email(),
			Password:        *password,
			ConfirmPassword: *password,
		})
		if err != nil {
			log.WithError(err).Warn("skipping fake visitor")
			continue
		}
		log.Debug("visitor created", "username", user.Username)
		created++
	}

	log.Info("seed finished", "visitors", created)
}
