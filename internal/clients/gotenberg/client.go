package gotenberg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/utils"
)

// RenderError is the distinct failure kind of the PDF boundary. Rendering is
// latency-bound and external; callers treat these as retryable rather than
// fatal.
type RenderError struct {
	StatusCode int
	Message    string
}

func (e *RenderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("pdf rendering failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pdf rendering failed: %s", e.Message)
}

// Margins in inches, as the rendering engine expects them.
type Margins struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

func DefaultMargins() Margins {
	return Margins{Top: "0.8", Right: "0.6", Bottom: "0.8", Left: "0.6"}
}

type RenderOptions struct {
	Margins Margins
}

// Client talks to a Gotenberg-compatible Chromium rendering service.
type Client struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func NewClient(log *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(utils.GetEnv("GOTENBERG_URL", "http://localhost:3000", log), "/")
	timeoutSec := utils.GetEnvAsInt("GOTENBERG_TIMEOUT_SECONDS", 30, log)
	return &Client{
		log:     log.With("client", "GotenbergClient"),
		baseURL: baseURL,
		http:    &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

// Render converts a self-contained HTML document into PDF bytes.
func (c *Client) Render(ctx context.Context, html string, opts RenderOptions) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, &RenderError{Message: "empty html input"}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	if _, err := part.Write([]byte(html)); err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	fields := map[string]string{
		"marginTop":    opts.Margins.Top,
		"marginRight":  opts.Margins.Right,
		"marginBottom": opts.Margins.Bottom,
		"marginLeft":   opts.Margins.Left,
	}
	for key, val := range fields {
		if val == "" {
			continue
		}
		if err := writer.WriteField(key, val); err != nil {
			return nil, &RenderError{Message: err.Error()}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &RenderError{Message: err.Error()}
	}

	url := c.baseURL + "/forms/chromium/convert/html"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Render request failed", "error", err)
		return nil, &RenderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("Render returned non-2xx", "status", resp.StatusCode)
		return nil, &RenderError{StatusCode: resp.StatusCode, Message: string(detail)}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	if len(pdf) == 0 {
		return nil, &RenderError{Message: "empty pdf response"}
	}
	return pdf, nil
}
