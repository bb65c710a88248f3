// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jacobe603/dst-submittals-v2/internal/httputil"
)

// GotenbergClient converts office documents to PDF through a Gotenberg
// service's LibreOffice route. Output is PDF/A-2b so downstream page
// surgery sees a predictable page tree.
type GotenbergClient struct {
	baseURL string
	client  *http.Client
	retries int
}

// NewGotenbergClient returns a client for the Gotenberg instance at
// baseURL (e.g. http://localhost:3000).
func NewGotenbergClient(baseURL string, timeout time.Duration) *GotenbergClient {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GotenbergClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retries: 3,
	}
}

// Healthy reports whether the service answers its health endpoint.
func (g *GotenbergClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// WaitHealthy polls the health endpoint until the service is up or the
// deadline passes.
func (g *GotenbergClient) WaitHealthy(ctx context.Context, deadline time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		if g.Healthy(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("gotenberg at %s not healthy after %s", g.baseURL, deadline)
		case <-ticker.C:
		}
	}
}

// Convert posts the document to the LibreOffice route and writes the
// returned PDF to outputPath.
func (g *GotenbergClient) Convert(ctx context.Context, inputPath, outputPath string) error {
	doc, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("files", filepath.Base(inputPath))
	if err != nil {
		return fmt.Errorf("building form: %w", err)
	}
	if _, err := part.Write(doc); err != nil {
		return fmt.Errorf("building form: %w", err)
	}
	if err := form.WriteField("pdfa", "PDF/A-2b"); err != nil {
		return fmt.Errorf("building form: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("building form: %w", err)
	}

	payload := body.Bytes()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/forms/libreoffice/convert", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	// Retries replay the body through GetBody.
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}

	resp, err := httputil.DoWithRetry(ctx, g.client, req, g.retries)
	if err != nil {
		return fmt.Errorf("converting %s: %w", filepath.Base(inputPath), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gotenberg returned %d for %s: %s",
			resp.StatusCode, filepath.Base(inputPath), bytes.TrimSpace(msg))
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return out.Close()
}
