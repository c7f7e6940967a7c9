package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ExtractResult is the decoded extraction response: the document's plain
// text plus the structured payload exactly as the service shipped it. The
// payload shape is inconsistent on the wire; callers must normalize it.
type ExtractResult struct {
	RawText    string
	Structured any
}

type extractResponse struct {
	RawText        string          `json:"raw_text"`
	StructuredData json.RawMessage `json:"structured_data"`
	Error          string          `json:"error"`
}

// ProcessDocument uploads one file to the extraction service. The call is
// bounded by the configured upload timeout; hitting it is reported as a
// distinct failure because the backend may be cold-starting.
func (c *Client) ProcessDocument(ctx context.Context, path string) (ExtractResult, error) {
	endpoint, err := c.endpoint("api/process")
	if err != nil {
		return ExtractResult{}, err
	}

	body, contentType, err := multipartFile(path)
	if err != nil {
		return ExtractResult{}, err
	}

	timeout := time.Duration(c.cfg.UploadTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return ExtractResult{}, err
	}
	req.Header.Set("Content-Type", contentType)
	decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ExtractResult{}, classifyTransport(err, timeout)
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return ExtractResult{}, classifyTransport(err, timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ExtractResult{}, classifyStatus(resp.StatusCode, blob, "document processing failed")
	}

	var decoded extractResponse
	if err := json.Unmarshal(blob, &decoded); err != nil {
		return ExtractResult{}, fmt.Errorf("decode extraction response: %w", err)
	}
	if decoded.Error != "" {
		return ExtractResult{}, &Error{Kind: KindServer, Message: decoded.Error, Status: resp.StatusCode}
	}

	out := ExtractResult{RawText: decoded.RawText}
	if len(decoded.StructuredData) > 0 {
		if err := json.Unmarshal(decoded.StructuredData, &out.Structured); err != nil {
			return ExtractResult{}, fmt.Errorf("decode structured payload: %w", err)
		}
	}
	return out, nil
}

func classifyTransport(err error, timeout time.Duration) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("the extraction service did not respond within %s; it may be cold-starting, try again in a minute", timeout),
		}
	}
	return &Error{Kind: KindConnectivity, Message: "could not reach the extraction service"}
}

func multipartFile(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
