package health

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the liveness payload served on /health.
func (s *Service) Status() map[string]string {
	return map[string]string{
		"status":  "OK",
		"message": "DAS backend is running",
	}
}
