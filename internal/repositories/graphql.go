package repositories

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"cmsadmin/internal/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GraphQLClient posts queries to the CMS GraphQL endpoint.
type GraphQLClient struct {
	Endpoint string
	HTTP     *http.Client
	Token    func(ctx context.Context) string
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   map[string]jsoniter.RawMessage `json:"data"`
	Errors []gqlError                     `json:"errors"`
}

func (c GraphQLClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Do runs query and decodes data[field] into out. A populated errors array
// becomes a RemoteError carrying the first message; everything that stops
// the round-trip itself becomes a TransportError.
func (c GraphQLClient) Do(ctx context.Context, op, query string, vars map[string]any, field string, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != nil {
		if tok := c.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}

	var decoded gqlResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return domain.TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return domain.TransportError{Op: op, Err: err}
	}
	// GraphQL servers may report application errors with a non-2xx status;
	// the errors array wins when present.
	if len(decoded.Errors) > 0 {
		return domain.RemoteError{Op: op, Message: decoded.Errors[0].Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	payload, ok := decoded.Data[field]
	if !ok {
		return domain.TransportError{Op: op, Err: fmt.Errorf("response has no %q field", field)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return domain.TransportError{Op: op, Err: err}
	}
	return nil
}
