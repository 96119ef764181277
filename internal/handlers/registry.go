package handlers

import (
	"vlinky_backend/internal/services"
	"vlinky_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth    *AuthHandler
	Creator *CreatorHandler
	Request *RequestHandler
	Upload  *UploadHandler
	Admin   *AdminHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:    NewAuthHandler(base, container.AuthService),
		Creator: NewCreatorHandler(base, container.CreatorService, container.RequestService),
		Request: NewRequestHandler(base, container.RequestService),
		Upload:  NewUploadHandler(base, container.UploadService),
		Admin:   NewAdminHandler(base, container.AdminService),
	}
}
