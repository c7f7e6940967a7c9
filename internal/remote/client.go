package remote

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"docflow/internal/config"
)

// Client talks to the extraction and persistence services. The upload call
// carries its own deadline (the extraction backend may need a cold-start
// warm-up); save and history rely on transport defaults.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{}}
}

func (c *Client) endpoint(path string) (string, error) {
	base := strings.TrimRight(c.cfg.APIBaseURL, "/")
	u, err := url.Parse(base + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}
