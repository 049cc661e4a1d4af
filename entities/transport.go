package entities

import (
	"context"
	"fmt"
	"net/http"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/crudcheck/rest-contract-tests/config"
	"github.com/crudcheck/rest-contract-tests/framework"
)

// transport sends one authorized JSON request per call. It holds no per-request state, so a
// single instance can be shared by concurrent tests.
type transport struct {
	baseURL string
	token   string
	timeout time.Duration
	logger  framework.Logger
}

type response struct {
	status int
	body   []byte
}

func newTransport(cfg config.Config, logger framework.Logger) *transport {
	cfg = cfg.Normalized()
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &transport{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (t *transport) withLogger(logger framework.Logger) *transport {
	if logger == nil {
		logger = framework.NullLogger()
	}
	t1 := *t
	t1.logger = logger
	return &t1
}

// createAgent builds the request for one API call. It attaches the bearer token and the JSON
// headers, and bounds the call by the context deadline or else by the configured timeout.
func (t *transport) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := t.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(t.timeout)
	}

	agent.Set("Accept", "application/json")
	agent.Set("Authorization", "Bearer "+t.token)

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// do sends the request and returns whatever status the server answered with. Only a failure
// to get a response at all is an error here; status interpretation is up to the caller.
func (t *transport) do(ctx context.Context, method, endpoint string, body interface{}) (response, error) {
	if err := ctx.Err(); err != nil {
		return response{}, err
	}
	agent, err := t.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return response{}, err
	}

	t.logger.Printf("%s %s", method, endpoint)
	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		t.logger.Printf("%s %s failed: %s", method, endpoint, errs[0])
		return response{}, fmt.Errorf("error sending request: %w", errs[0])
	}
	t.logger.Printf("%s %s -> %d %s", method, endpoint, status, abbreviate(respBody))
	return response{status: status, body: respBody}, nil
}

const maxLoggedBody = 300

func abbreviate(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "..."
}
