package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/ipfs/go-cid"
)

// Client talks to a web3.storage-style pinning API: multipart POST of a single
// file, bearer token auth, JSON response carrying the content identifier.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// ProviderError is returned when the provider answers with a non-success
// status or an unusable body. Status and body are kept for diagnostics.
type ProviderError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *ProviderError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("pinning provider: %s (status %d, body %q)", e.Reason, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("pinning provider returned status %d: %s", e.StatusCode, e.Body)
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     &http.Client{},
	}
}

// uploadResponse covers both response shapes the provider is known to emit:
// a top-level cid and a value.cid wrapper.
type uploadResponse struct {
	CID   string `json:"cid"`
	Value struct {
		CID string `json:"cid"`
	} `json:"value"`
}

// Pin uploads one file and returns its content identifier. The returned CID is
// validated syntactically; a provider response without a parseable CID is a
// *ProviderError.
func (c *Client) Pin(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file to form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body), Reason: "malformed response body"}
	}

	id := parsed.CID
	if id == "" {
		id = parsed.Value.CID
	}
	if id == "" {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body), Reason: "no cid in response"}
	}

	if _, err := cid.Decode(id); err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body), Reason: "invalid cid in response"}
	}

	return id, nil
}
