package services

// ChangePublisher fans a collection change out to realtime subscribers.
// Implemented by the ws hub; a no-op implementation serves tests.
type ChangePublisher interface {
	Publish(collection, action, id string)
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(collection, action, id string) {}

// ServiceContainer holds every constructed service for handler wiring.
type ServiceContainer struct {
	AuthService    AuthService
	CreatorService CreatorService
	RequestService RequestService
	UploadService  UploadService
	AdminService   AdminService
}
