package careerforge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const contentType = "application/json"

func (c *Client) getJSON(op, url string, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req, target)
}

func (c *Client) postJSON(op, url string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req, target)
}

// postFile uploads the file at path as a multipart form under the given field name.
func (c *Client) postFile(op, url, field, path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}

	if _, err = io.Copy(part, file); err != nil {
		return err
	}
	w.Close()

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, &b)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(op, req, target)
}

func (c *Client) do(op string, req *http.Request, target any) error {
	c.logger.Debug("make request", zap.String("op", op), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RemoteError{Op: op, Status: resp.StatusCode, Detail: remoteDetail(data)}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return &MalformedResponseError{Op: op, Missing: "json body"}
	}

	return nil
}

// remoteDetail extracts the server-provided message from an error body.
// The backends use "detail"; "message" is accepted as well.
func remoteDetail(data []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Message
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}
