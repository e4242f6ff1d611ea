package domain

// Well-known service names exposed by instances.
const (
	ServiceGRPC = "grpc"
	ServiceHTTP = "http"
)

// Service is one endpoint exposed by a running instance.
// For gRPC, URI follows the gRPC name resolution syntax (e.g. "dns:10.0.0.4:50052").
// For HTTP, URI is the base URL of the API. Headers must accompany every request.
type Service struct {
	URI     string
	Headers map[string]string
}

// ValidateService checks a service received from the server; only the URI is mandatory.
func ValidateService(s Service) error {
	if s.URI == "" {
		return &RecordError{Record: "service", Index: -1, Reason: "uri is required"}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Service) Clone() Service {
	headers := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		headers[k] = v
	}
	return Service{URI: s.URI, Headers: headers}
}
