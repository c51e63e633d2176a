package moralis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const applicationIDHeader = "X-Parse-Application-Id"

// maxErrorBody bounds how much of an error response ends up in error messages.
const maxErrorBody = 512

// Client calls cloud functions on a Moralis server.
type Client struct {
	client    *http.Client
	serverURL string
	appID     string
}

func NewClient(client *http.Client, serverURL string, appID string) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		client:    client,
		serverURL: strings.TrimRight(serverURL, "/"),
		appID:     appID,
	}
}

// envelope is the response body of a cloud function call.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Code   int             `json:"code"`
	Error  string          `json:"error"`
}

// Call invokes the cloud function with params as its JSON body and decodes
// the function result into out.
func (c *Client) Call(ctx context.Context, function string, params any, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("moralis: encode params: %w", err)
	}

	u := fmt.Sprintf("%s/functions/%s", c.serverURL, function)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("moralis: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(applicationIDHeader, c.appID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("moralis: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("moralis: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if json.Unmarshal(respBody, &env) == nil && env.Error != "" {
			return fmt.Errorf("moralis: %s: status %d, code %d: %s", function, resp.StatusCode, env.Code, env.Error)
		}
		return fmt.Errorf("moralis: %s: status %d, body: %s", function, resp.StatusCode, truncate(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("moralis: %s: decode body: %w", function, err)
	}
	if env.Error != "" {
		return fmt.Errorf("moralis: %s: code %d: %s", function, env.Code, env.Error)
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("moralis: %s: decode result: %w", function, err)
	}

	return nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
