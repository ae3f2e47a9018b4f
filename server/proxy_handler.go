package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ParthJhaveri10/Lumeo/logger"
)

// ProxyHandler forwards requests under a path prefix to the upstream
// catalog origin and relays the answer verbatim, so browser clients
// can reach the catalog through this server's own domain.
type ProxyHandler struct {
	upstream *url.URL
	prefix   string
	client   *http.Client
}

// internalParams are routing parameters consumed by this server and
// never forwarded upstream.
var internalParams = []string{"path"}

// NewProxyHandler creates a proxy for the given upstream base URL.
// The prefix is stripped from inbound paths before forwarding.
func NewProxyHandler(upstreamBase, prefix string) (*ProxyHandler, error) {
	u, err := url.Parse(upstreamBase)
	if err != nil {
		return nil, err
	}
	return &ProxyHandler{
		upstream: u,
		prefix:   strings.TrimSuffix(prefix, "/"),
		client:   &http.Client{},
	}, nil
}

func (p *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Preflight never reaches the upstream. The CORS middleware has
	// already attached the header set.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	requestID := uuid.New().String()

	path := strings.TrimPrefix(r.URL.Path, p.prefix)
	query := r.URL.Query()
	for _, param := range internalParams {
		query.Del(param)
	}

	target := *p.upstream
	target.Path = strings.TrimSuffix(target.Path, "/") + path
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), r.Body)
	if err != nil {
		p.fail(w, requestID, err)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.fail(w, requestID, err)
		return
	}
	defer resp.Body.Close()

	logger.Debug("proxied catalog request",
		logger.String("requestId", requestID),
		logger.String("method", r.Method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Error("failed to relay upstream body",
			logger.String("requestId", requestID),
			logger.ErrorField(err),
		)
	}
}

func (p *ProxyHandler) fail(w http.ResponseWriter, requestID string, err error) {
	logger.Error("proxy request failed",
		logger.String("requestId", requestID),
		logger.ErrorField(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}
