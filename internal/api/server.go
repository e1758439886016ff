package api

import (
	"github.com/vlemaire/flashdeck/internal/auth"
	"github.com/vlemaire/flashdeck/internal/services"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	AuthService services.AuthService
	CardService services.CardService
	JWT         *auth.JWTService
}

func NewServer(authService services.AuthService, cardService services.CardService, jwt *auth.JWTService) *Server {
	return &Server{
		AuthService: authService,
		CardService: cardService,
		JWT:         jwt,
	}
}
