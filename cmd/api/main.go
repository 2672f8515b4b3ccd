// @title Somnia API
// @description API for sleep tracking and points rewards app "Somnia"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/somnolab/somnia/internal/api"
	"github.com/somnolab/somnia/internal/repository"
	"github.com/somnolab/somnia/internal/service"
	"github.com/somnolab/somnia/pkg/cleanup"
	"github.com/somnolab/somnia/pkg/config"
	jwtservice "github.com/somnolab/somnia/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	sleepService := service.NewSleepService(
		repository.NewSleepLogsRepo(&dbCfg),
		repository.NewProfilesRepo(&dbCfg),
	)
	rewardsService := service.NewRewardsService(
		repository.NewRewardsRepo(&dbCfg),
		repository.NewRedemptionsRepo(&dbCfg),
		repository.NewProfilesRepo(&dbCfg),
	)
	serv := api.New(&api.ServicesList{
		UserService:    userService,
		SleepService:   sleepService,
		RewardsService: rewardsService,
		JwtService:     jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	defer cleanup.CleanUp()
	err := serv.Run(cfg.GetStringOrDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
