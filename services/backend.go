package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

var (
	// ErrUnreachable wraps transport-level failures; callers surface a
	// generic retryable message for it.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrUnauthorized marks an expired or invalid session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// RejectionError carries a server-reported rejection reason to be surfaced
// verbatim to the user.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func reject(message string) error {
	if message == "" {
		message = "request rejected by server"
	}
	return &RejectionError{Message: message}
}

// BackendClient is the VenomVision API surface this frontend consumes.
type BackendClient interface {
	Identify(ctx context.Context, filename string, image []byte) (*Snake, error)
	RegisterHandler(ctx context.Context, fields map[string]string, imageName string, image []byte) error
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, token string) (*Handler, error)
	ReportBite(ctx context.Context, fields map[string]string) error
	SetPassword(ctx context.Context, token, password string) error
}

type httpBackend struct {
	base   string
	client *http.Client
}

// NewHTTPBackend builds the real API client. A zero timeout disables request
// deadlines, matching the original client instantiation; a hung request then
// holds the submitting view until the transport gives up.
func NewHTTPBackend(base string, timeout time.Duration) BackendClient {
	return &httpBackend{
		base: base,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (b *httpBackend) Identify(ctx context.Context, filename string, image []byte) (*Snake, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out identifyResponse
	if err := b.do(ctx, http.MethodPost, "/api/identify", w.FormDataContentType(), body, "", &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Result == nil {
		return nil, reject(out.Message)
	}
	return out.Result, nil
}

func (b *httpBackend) RegisterHandler(ctx context.Context, fields map[string]string, imageName string, image []byte) error {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	if len(image) > 0 {
		part, err := w.CreateFormFile("profileImage", imageName)
		if err != nil {
			return err
		}
		if _, err := part.Write(image); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	var out statusResponse
	if err := b.do(ctx, http.MethodPost, "/api/handler-signup", w.FormDataContentType(), body, "", &out); err != nil {
		return err
	}
	if !out.Success {
		return reject(out.Message)
	}
	return nil
}

func (b *httpBackend) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	var out loginResponse
	if err := b.do(ctx, http.MethodPost, "/api/handlers/auth/login", "application/json", bytes.NewReader(payload), "", &out); err != nil {
		return "", err
	}
	if !out.Success || out.Token == "" {
		return "", reject(out.Message)
	}
	return out.Token, nil
}

func (b *httpBackend) Profile(ctx context.Context, token string) (*Handler, error) {
	var out profileResponse
	if err := b.do(ctx, http.MethodGet, "/api/handlers/auth/me", "", nil, token, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Handler == nil {
		return nil, ErrUnauthorized
	}
	return out.Handler, nil
}

func (b *httpBackend) ReportBite(ctx context.Context, fields map[string]string) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	var out statusResponse
	return b.do(ctx, http.MethodPost, "/api/report-bite", "application/json", bytes.NewReader(payload), "", &out)
}

func (b *httpBackend) SetPassword(ctx context.Context, token, password string) error {
	payload, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return err
	}

	var out statusResponse
	if err := b.do(ctx, http.MethodPost, "/api/handlers/auth/set-password/"+token, "application/json", bytes.NewReader(payload), "", &out); err != nil {
		return err
	}
	if !out.Success {
		return reject(out.Message)
	}
	return nil
}

// do issues one request and decodes the response into out. Non-2xx responses
// become RejectionError (or ErrUnauthorized for 401) using the server's
// message when one is present.
func (b *httpBackend) do(ctx context.Context, method, path, contentType string, body io.Reader, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, b.base+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		log.Printf("backend request failed: %s %s: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var status statusResponse
		if json.Unmarshal(raw, &status) == nil && status.Message != "" {
			return reject(status.Message)
		}
		return reject("server error, status: " + resp.Status)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}
