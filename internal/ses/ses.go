package ses

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL = "http://localhost:8000"
	userAgent     = "spigell/sesctl"
)

// Client talks to the SES backend. Every call is a single attempt: there is
// no retry and no client-side timeout, callers cancel through the context.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		token:      strings.TrimSpace(token),
		APIURL:     apiURL,
		HTTPClient: &http.Client{},
		logger:     logger,
		UserAgent:  userAgent,
	}
}
