package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	sessionTTL = 7 * 24 * time.Hour
	previewTTL = time.Hour
)

// Flash is a one-shot navigation payload: written by the handler that
// redirects, read exactly once by the destination view, gone afterwards.
type Flash struct {
	Kind     string `json:"kind"` // "success" or "error"
	Message  string `json:"message"`
	Result   *Snake `json:"result,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// SessionStore keeps all per-browser persistent state: the handler session
// token, the locale choice, one-shot flashes, and the staged image preview.
// Every value lives under the session id carried by the vv_sid cookie.
type SessionStore struct {
	kv KeyValueStore
}

func NewSessionStore(kv KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// NewSessionID mints an id for the vv_sid cookie.
func NewSessionID() string {
	return uuid.NewString()
}

func sessionKey(sid, field string) string {
	return "sess:" + sid + ":" + field
}

func (s *SessionStore) Token(ctx context.Context, sid string) (string, bool) {
	token, err := s.kv.Get(ctx, sessionKey(sid, "token"))
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *SessionStore) SetToken(ctx context.Context, sid, token string) error {
	return s.kv.Set(ctx, sessionKey(sid, "token"), token, sessionTTL)
}

// ClearToken always succeeds from the caller's point of view; a storage error
// only means the token may outlive the logout by its TTL.
func (s *SessionStore) ClearToken(ctx context.Context, sid string) {
	_ = s.kv.Delete(ctx, sessionKey(sid, "token"))
}

func (s *SessionStore) Locale(ctx context.Context, sid string) string {
	locale, err := s.kv.Get(ctx, sessionKey(sid, "locale"))
	if err != nil {
		return ""
	}
	return locale
}

func (s *SessionStore) SetLocale(ctx context.Context, sid, locale string) error {
	return s.kv.Set(ctx, sessionKey(sid, "locale"), locale, sessionTTL)
}

func (s *SessionStore) PutFlash(ctx context.Context, sid string, flash Flash) error {
	raw, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, sessionKey(sid, "flash"), string(raw), 10*time.Minute)
}

// TakeFlash consumes the pending flash. A direct revisit of the destination
// view finds nothing.
func (s *SessionStore) TakeFlash(ctx context.Context, sid string) *Flash {
	raw, err := s.kv.Get(ctx, sessionKey(sid, "flash"))
	if err != nil {
		return nil
	}
	_ = s.kv.Delete(ctx, sessionKey(sid, "flash"))
	var flash Flash
	if json.Unmarshal([]byte(raw), &flash) != nil {
		return nil
	}
	return &flash
}

type previewBlob struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// StagePreview stores an uploaded image for preview and returns its id. At
// most one preview exists per session: staging a new file releases the
// previous one.
func (s *SessionStore) StagePreview(ctx context.Context, sid, contentType string, data []byte) (string, error) {
	if prev, err := s.kv.Get(ctx, sessionKey(sid, "preview")); err == nil && prev != "" {
		_ = s.kv.Delete(ctx, "preview:"+prev)
	}

	id := uuid.NewString()
	raw, err := json.Marshal(previewBlob{ContentType: contentType, Data: data})
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, "preview:"+id, string(raw), previewTTL); err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, sessionKey(sid, "preview"), id, previewTTL); err != nil {
		return "", err
	}
	return id, nil
}

// Preview fetches a staged image by id.
func (s *SessionStore) Preview(ctx context.Context, id string) (string, []byte, bool) {
	raw, err := s.kv.Get(ctx, "preview:"+id)
	if err != nil {
		return "", nil, false
	}
	var blob previewBlob
	if json.Unmarshal([]byte(raw), &blob) != nil {
		return "", nil, false
	}
	return blob.ContentType, blob.Data, true
}

// ReleasePreview drops the session's staged preview, if any.
func (s *SessionStore) ReleasePreview(ctx context.Context, sid string) {
	if id, err := s.kv.Get(ctx, sessionKey(sid, "preview")); err == nil && id != "" {
		_ = s.kv.Delete(ctx, "preview:"+id)
	}
	_ = s.kv.Delete(ctx, sessionKey(sid, "preview"))
}
