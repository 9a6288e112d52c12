package dto

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// APIResponse is the envelope every endpoint answers with. Failures are
// reported through Status and Code, never through the HTTP status line.
type APIResponse[T any] struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
	Data      T      `json:"data,omitempty"`
}

type ErrorResponse = APIResponse[map[string]string]

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
