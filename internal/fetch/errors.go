package fetch

import "fmt"

// ErrorKind classifies fetch failures.
type ErrorKind string

const (
	// KindNetwork covers transport-level failures: DNS, connect, TLS,
	// timeouts.
	KindNetwork ErrorKind = "NETWORK_ERROR"
	// KindHTTP covers non-2xx responses.
	KindHTTP ErrorKind = "HTTP_ERROR"
)

// FetchError describes a failed page retrieval.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Status int // set for KindHTTP
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("%s: %s returned status %d", e.Kind, e.URL, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches fetch errors by kind.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && e.Kind == t.Kind
}

// GetStatusCode lets the retry policy see the HTTP status.
func (e *FetchError) GetStatusCode() int {
	return e.Status
}
