// Package v1 is the Go client for the InternHQ HTTP API, used by ops
// tooling and scripted imports.
package v1

type InternHQClient struct {
	Transport    *Transport
	TimeLogs     *TimeLogEndpoint
	DTR          *DTREndpoint
	Certificates *CertificateEndpoint
}

// NewInternHQClient initializes the API client
func NewInternHQClient(baseURL string, token string) *InternHQClient {
	t := NewTransport(baseURL, token)
	return &InternHQClient{
		Transport:    t,
		TimeLogs:     &TimeLogEndpoint{transport: t},
		DTR:          &DTREndpoint{transport: t},
		Certificates: &CertificateEndpoint{transport: t},
	}
}
