package api

import (
	"net/http"
	"time"

	"tradesim/src/api/handlers"
	"tradesim/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Port    string
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Port:    cfg.Service.Port,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/register", s.Handler.Register)
	s.Router.Post("/api/login", s.Handler.PostToken)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.Handler.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Get("/api/quote", s.Handler.GetQuote)
		r.Post("/api/trades/buy", s.Handler.Buy)
		r.Post("/api/trades/sell", s.Handler.Sell)
		r.Get("/api/portfolio", s.Handler.GetPortfolio)
		r.Get("/api/portfolio/audit", s.Handler.AuditPortfolio)
		r.Get("/api/history", s.Handler.GetHistory)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      corsHandler.Handler(server),
	}
	return httpServer
}
