package upmon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fetch is fetch the upmon status API and returns Report.
func Fetch(ctx context.Context, u *url.URL) (Report, error) {
	var err error
	u, err = u.Parse("status")
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrCommunicate, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrCommunicate, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrCommunicate, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("%w: failed to read response: %s", ErrCommunicate, err)
	}

	var r Report
	err = json.Unmarshal(raw, &r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: failed to parse response: %s", ErrCommunicate, err)
	}

	return r, nil
}

// Client delivers check batches to an upmon server.
type Client struct {
	// Target is the base URL of the server, for example
	// http://localhost:8900/.
	Target *url.URL

	// Token is the shared-secret bearer token. Leave empty when the
	// server runs in open mode.
	Token string

	// HTTPClient is the client for delivering batches.
	// http.DefaultClient will used if not set.
	HTTPClient *http.Client
}

// Report delivers one batch to the server's record endpoint.
//
// It returns ErrUnauthorized if the server rejects the token, or
// ErrCommunicate for any other failure.
func (c Client) Report(ctx context.Context, batch Batch) error {
	u, err := c.Target.Parse("status")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCommunicate, err)
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCommunicate, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCommunicate, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCommunicate, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status: %s", ErrCommunicate, resp.Status)
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("%w: failed to parse response: %s", ErrCommunicate, err)
	}
	if !ack.Success {
		return fmt.Errorf("%w: server did not acknowledge the batch", ErrCommunicate)
	}

	return nil
}
