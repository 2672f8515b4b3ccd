package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/somnolab/somnia/internal/service"
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	sleepService   service.SleepServiceI
	rewardsService service.RewardsServiceI
	jwtService     JWTServiceI
}

type ServicesList struct {
	UserService    service.UserServiceI
	SleepService   service.SleepServiceI
	RewardsService service.RewardsServiceI
	JwtService     JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		sleepService:   servicesOptions.SleepService,
		rewardsService: servicesOptions.RewardsService,
		jwtService:     servicesOptions.JwtService,
	}
	s.routes()
	return s
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/sleep", s.LogSleep)
			r.Get("/sleep/today", s.TodaysLog)
			r.Get("/sleep/weekly", s.WeeklySummary)
			r.Get("/profile", s.Profile)
			r.Get("/rewards", s.ListRewards)
			r.Post("/rewards/{id}/redeem", s.RedeemReward)
			r.Get("/rewards/redeemed", s.RedeemedRewards)
		})
	})
}

// Handler exposes the configured mux, used by httptest in handler tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}
