package routes

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venomvision/venomvision-web/i18n"
	"github.com/venomvision/venomvision-web/services"
	"github.com/venomvision/venomvision-web/views"
)

const testSID = "test-sid"

type fakeBackend struct {
	calls map[string]int

	loginToken  string
	loginErr    error
	profile     *services.Handler
	profileErr  error
	identified  *services.Snake
	identifyErr error
	reportErr   error
	registerErr error
	passwordErr error
}

func (f *fakeBackend) record(name string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeBackend) Identify(ctx context.Context, filename string, image []byte) (*services.Snake, error) {
	f.record("identify")
	return f.identified, f.identifyErr
}

func (f *fakeBackend) RegisterHandler(ctx context.Context, fields map[string]string, imageName string, image []byte) error {
	f.record("register")
	return f.registerErr
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (string, error) {
	f.record("login")
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) Profile(ctx context.Context, token string) (*services.Handler, error) {
	f.record("profile")
	return f.profile, f.profileErr
}

func (f *fakeBackend) ReportBite(ctx context.Context, fields map[string]string) error {
	f.record("reportBite")
	return f.reportErr
}

func (f *fakeBackend) SetPassword(ctx context.Context, token, password string) error {
	f.record("setPassword")
	return f.passwordErr
}

func newTestApp(t *testing.T, backend *fakeBackend) (*fiber.App, *services.SessionStore) {
	t.Helper()

	engine := views.NewEngine()
	require.NoError(t, engine.Load())

	store, err := i18n.NewStore()
	require.NoError(t, err)

	sessions := services.NewSessionStore(services.NewMemoryStore())

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 engine,
	})
	RegisterRoutes(app, &Deps{
		I18n:     store,
		Sessions: sessions,
		Backend:  backend,
	})
	return app, sessions
}

func get(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: sidCookie, Value: testSID})
	return req
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: sidCookie, Value: testSID})
	return req
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestLoginStoresTokenAndRedirects(t *testing.T) {
	backend := &fakeBackend{loginToken: "abc"}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/handler-login", url.Values{
		"email":    {"a@b.com"},
		"password": {"secret"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/handler-dashboard", resp.Header.Get(fiber.HeaderLocation))

	token, ok := sessions.Token(context.Background(), testSID)
	require.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestLoginMissingFieldsSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/handler-login", url.Values{"email": {"a@b.com"}}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, backend.calls["login"])
	assert.Contains(t, body(t, resp), "Password")
}

func TestLoginRejectedShowsServerMessage(t *testing.T) {
	backend := &fakeBackend{loginErr: &services.RejectionError{Message: "Invalid credentials"}}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/handler-login", url.Values{
		"email":    {"a@b.com"},
		"password": {"wrong"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Invalid credentials")

	_, ok := sessions.Token(context.Background(), testSID)
	assert.False(t, ok)
}

func TestDashboardWithoutTokenRedirects(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/handler-dashboard"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/handler-login", resp.Header.Get(fiber.HeaderLocation))
	assert.Zero(t, backend.calls["profile"])
}

func TestDashboardRejectedTokenClearsIt(t *testing.T) {
	backend := &fakeBackend{profileErr: services.ErrUnauthorized}
	app, sessions := newTestApp(t, backend)
	require.NoError(t, sessions.SetToken(context.Background(), testSID, "stale"))

	resp, err := app.Test(get("/handler-dashboard"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/handler-login", resp.Header.Get(fiber.HeaderLocation))

	_, ok := sessions.Token(context.Background(), testSID)
	assert.False(t, ok, "rejected token must be cleared")
}

func TestDashboardUnreachableKeepsToken(t *testing.T) {
	backend := &fakeBackend{profileErr: services.ErrUnreachable}
	app, sessions := newTestApp(t, backend)
	require.NoError(t, sessions.SetToken(context.Background(), testSID, "abc"))

	resp, err := app.Test(get("/handler-dashboard"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	token, ok := sessions.Token(context.Background(), testSID)
	require.True(t, ok, "transport failures must not log the handler out")
	assert.Equal(t, "abc", token)
}

func TestDashboardRendersProfile(t *testing.T) {
	backend := &fakeBackend{profile: &services.Handler{Name: "Rajesh Kumar", Email: "r@k.com", Status: "approved"}}
	app, sessions := newTestApp(t, backend)
	require.NoError(t, sessions.SetToken(context.Background(), testSID, "abc"))

	resp, err := app.Test(get("/handler-dashboard"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Rajesh Kumar")
}

func TestLogout(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)
	require.NoError(t, sessions.SetToken(context.Background(), testSID, "abc"))

	resp, err := app.Test(postForm("/logout", url.Values{}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/handler-login", resp.Header.Get(fiber.HeaderLocation))

	_, ok := sessions.Token(context.Background(), testSID)
	assert.False(t, ok)
}

func TestBiteReportMissingFieldsSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/report-bite", url.Values{"victimName": {"Asha"}}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, backend.calls["reportBite"])

	// The draft survives the validation round trip.
	assert.Contains(t, body(t, resp), "Asha")
}

func TestBiteReportSuccess(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/report-bite", url.Values{
		"victimName": {"Asha"},
		"location":   {"HSR Layout"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, backend.calls["reportBite"])

	flash := sessions.TakeFlash(context.Background(), testSID)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Message, "Report submitted successfully!")
}

func TestBiteReportEscalatesSevereSymptoms(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/report-bite", url.Values{
		"victimName": {"Asha"},
		"location":   {"HSR Layout"},
		"symptoms":   {"unconscious, difficulty breathing"},
		"age":        {"4"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	flash := sessions.TakeFlash(context.Background(), testSID)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Message, "call emergency services")
}

func TestLocateFallback(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/locate", url.Values{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		GPS      string `json:"gps"`
		Fallback bool   `json:"fallback"`
		Message  string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Fallback)
	assert.Equal(t, "12.9716, 77.5946", out.GPS)
	assert.Contains(t, out.Message, "Bangalore")
}

func TestLocateWithCoordinates(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/locate", url.Values{
		"lat": {"12.34"},
		"lng": {"56.78"},
	}))
	require.NoError(t, err)

	var out struct {
		GPS      string `json:"gps"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Fallback)
	assert.Equal(t, "12.34, 56.78", out.GPS)
}

func imageUpload(t *testing.T, field, filename, contentType string, data []byte) (*strings.Reader, string) {
	t.Helper()
	buf := &strings.Builder{}
	w := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return strings.NewReader(buf.String()), w.FormDataContentType()
}

func TestIdentifyFlow(t *testing.T) {
	backend := &fakeBackend{identified: &services.Snake{
		Name:        "Indian Cobra",
		DangerLevel: "extreme",
		VenomType:   "Neurotoxic",
	}}
	app, _ := newTestApp(t, backend)

	payload, contentType := imageUpload(t, "image", "cobra.jpg", "image/jpeg", []byte("fake-image"))
	req := httptest.NewRequest(http.MethodPost, "/identify", payload)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.AddCookie(&http.Cookie{Name: sidCookie, Value: testSID})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/identify-result", resp.Header.Get(fiber.HeaderLocation))

	// First visit renders the result, second lands in the no-result state.
	resp, err = app.Test(get("/identify-result"))
	require.NoError(t, err)
	first := body(t, resp)
	assert.Contains(t, first, "Indian Cobra")

	resp, err = app.Test(get("/identify-result"))
	require.NoError(t, err)
	assert.NotContains(t, body(t, resp), "Indian Cobra")
}

func TestIdentifyRejectsNonImage(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	payload, contentType := imageUpload(t, "image", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/identify", payload)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.AddCookie(&http.Cookie{Name: sidCookie, Value: testSID})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, backend.calls["identify"])
}

func TestIdentifyBackendFailure(t *testing.T) {
	backend := &fakeBackend{identifyErr: services.ErrUnreachable}
	app, _ := newTestApp(t, backend)

	payload, contentType := imageUpload(t, "image", "cobra.jpg", "image/jpeg", []byte("fake-image"))
	req := httptest.NewRequest(http.MethodPost, "/identify", payload)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.AddCookie(&http.Cookie{Name: sidCookie, Value: testSID})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/identify-result", resp.Header.Get(fiber.HeaderLocation))

	resp, err = app.Test(get("/identify-result"))
	require.NoError(t, err)
	assert.Contains(t, body(t, resp), "Server unreachable")
}

func TestHandlerSignup(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/register-handler", url.Values{
		"name":  {"New Handler"},
		"phone": {"+91-9000000000"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, backend.calls["register"])

	flash := sessions.TakeFlash(context.Background(), testSID)
	require.NotNil(t, flash)
	assert.Contains(t, flash.Message, "Handler registered successfully!")
}

func TestSetPasswordMismatch(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/set-password/tok123", url.Values{
		"password": {"secret1"},
		"confirm":  {"secret2"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, backend.calls["setPassword"])
	assert.Contains(t, body(t, resp), "Passwords do not match.")
}

func TestSetPasswordSuccess(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/set-password/tok123", url.Values{
		"password": {"secret1"},
		"confirm":  {"secret1"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/handler-login", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, backend.calls["setPassword"])
}

func TestLocaleSwitchPersists(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/locale", url.Values{"code": {"hi"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "hi", sessions.Locale(context.Background(), testSID))

	// Unsupported codes normalize to English.
	_, err = app.Test(postForm("/locale", url.Values{"code": {"fr"}}))
	require.NoError(t, err)
	assert.Equal(t, "en", sessions.Locale(context.Background(), testSID))
}

func TestSpeciesPage(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/identify/1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Naja naja")

	resp, err = app.Test(get("/identify/999"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestKnowledgeHubSearch(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/knowledge-hub?q=cobra"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := body(t, resp)
	assert.Contains(t, page, "Indian Cobra")
	assert.NotContains(t, page, "Russell")
}

func TestAdminSectionNormalizes(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/admin?section=bogus"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Snake Name")
}

func TestAdminSave(t *testing.T) {
	backend := &fakeBackend{}
	app, sessions := newTestApp(t, backend)

	resp, err := app.Test(postForm("/admin/handlers", url.Values{
		"handlerName":  {"Rajesh Kumar"},
		"handlerPhone": {"+91-9876543210"},
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin?section=handlers", resp.Header.Get(fiber.HeaderLocation))

	flash := sessions.TakeFlash(context.Background(), testSID)
	require.NotNil(t, flash)
	assert.Equal(t, "Handler data saved successfully", flash.Message)
}

func TestAdminSaveMissingRequired(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(postForm("/admin/myths", url.Values{"myth": {"Snakes drink milk"}}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Truth")
}

func TestPreviewNotFound(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/preview/nope"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCatchAll(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/no-such-page"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Page not found")
}

func TestHealth(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(t, backend)

	resp, err := app.Test(get("/healthz"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
