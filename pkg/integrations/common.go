package integrations

import (
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/kolam/pkg/errors"
)

const httpTimeout = 60 * time.Second

// DefaultBaseURL is where the design service listens in local development.
const DefaultBaseURL = "http://localhost:8000"

// NewHTTPClient creates an HTTP client with the standard timeout for design
// service requests. Generation can take several seconds for deep L-systems.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizeBaseURL validates base and strips trailing slashes so endpoint
// paths can be appended directly. An empty base selects [DefaultBaseURL].
func NormalizeBaseURL(base string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultBaseURL, nil
	}
	if err := errors.ValidateURL(base); err != nil {
		return "", err
	}
	return strings.TrimRight(base, "/"), nil
}
