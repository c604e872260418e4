package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/venomvision/venomvision-web/content"
	"github.com/venomvision/venomvision-web/forms"
	"github.com/venomvision/venomvision-web/i18n"
	"github.com/venomvision/venomvision-web/services"
)

const sidCookie = "vv_sid"

// Deps carries the shared stores every handler reads: the locale tables, the
// per-browser session state, and the backend API client. Redis is only used
// by the health probe and may be nil in tests.
type Deps struct {
	I18n     *i18n.Store
	Sessions *services.SessionStore
	Backend  services.BackendClient
	Redis    *redis.Client
}

// RegisterRoutes wires the full view registry. Literal paths are registered
// before the parameterized species view and the catch-all, so the most
// specific route always wins.
func RegisterRoutes(app *fiber.App, d *Deps) {
	app.Use(d.ensureSession)

	app.Get("/", d.landingPage)
	app.Get("/index", d.indexPage)
	app.Get("/knowledge-hub", d.knowledgeHubPage)
	app.Get("/report-bite", d.reportBitePage)
	app.Get("/register-handler", d.handlerSignupPage)
	app.Get("/handler-login", d.handlerLoginPage)
	app.Get("/handler-dashboard", d.handlerDashboardPage)
	app.Get("/admin", d.adminPage)
	app.Get("/identify-result", d.identifyResultPage)
	app.Get("/identify/:snakeId", d.speciesPage)
	app.Get("/set-password/:token", d.setPasswordPage)
	app.Get("/preview/:id", d.previewImage)
	app.Get("/healthz", d.health)

	app.Post("/locale", d.switchLocale)
	app.Post("/locate", d.captureLocation)
	app.Post("/identify", d.submitIdentify)
	app.Post("/report-bite", d.submitBiteReport)
	app.Post("/register-handler", d.submitHandlerSignup)
	app.Post("/handler-login", d.submitLogin)
	app.Post("/set-password/:token", d.submitSetPassword)
	app.Post("/logout", d.logout)
	app.Post("/admin/:section", d.saveAdminSection)

	app.Use(d.notFound)
}

func (d *Deps) ensureSession(c *fiber.Ctx) error {
	if c.Cookies(sidCookie) == "" {
		sid := services.NewSessionID()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
		})
		c.Locals("sid", sid)
	}
	return c.Next()
}

func sid(c *fiber.Ctx) string {
	if v, ok := c.Locals("sid").(string); ok && v != "" {
		return v
	}
	return c.Cookies(sidCookie)
}

// viewData is the template context shared by every page.
type viewData struct {
	Title   string
	Tagline string
	Locale  string
	Locales []string
	Flash   *services.Flash
	Data    fiber.Map

	translate func(key, fallback string) string
}

// T resolves a translation key against the active locale.
func (v viewData) T(key, fallback string) string {
	return v.translate(key, fallback)
}

// formView is the context the shared form-field partial renders from.
type formView struct {
	Schema forms.Schema
	Values map[string]string
}

func emptyValues(schema forms.Schema) map[string]string {
	return schema.Values(func(string) string { return "" })
}

func (d *Deps) locale(c *fiber.Ctx) string {
	saved := d.Sessions.Locale(c.UserContext(), sid(c))
	return d.I18n.Detect(saved, c.Get(fiber.HeaderAcceptLanguage))
}

// page builds the template context and consumes the pending flash, if any.
func (d *Deps) page(c *fiber.Ctx, title, tagline string, data fiber.Map) viewData {
	return d.pageWithFlash(c, title, tagline, d.Sessions.TakeFlash(c.UserContext(), sid(c)), data)
}

func (d *Deps) pageWithFlash(c *fiber.Ctx, title, tagline string, flash *services.Flash, data fiber.Map) viewData {
	locale := d.locale(c)
	if data == nil {
		data = fiber.Map{}
	}
	return viewData{
		Title:   title,
		Tagline: tagline,
		Locale:  locale,
		Locales: d.I18n.Supported(),
		Flash:   flash,
		Data:    data,
		translate: func(key, fallback string) string {
			return d.I18n.Translate(locale, key, fallback)
		},
	}
}

func (d *Deps) landingPage(c *fiber.Ctx) error {
	return c.Render("landing", d.page(c, "VenomVision", "", nil))
}

func (d *Deps) indexPage(c *fiber.Ctx) error {
	return c.Render("index", d.page(c, "VenomVision", "", fiber.Map{
		"handlers": content.Handlers(),
	}))
}

func (d *Deps) knowledgeHubPage(c *fiber.Ctx) error {
	query := c.Query("q")
	return c.Render("knowledge_hub", d.page(c, "Knowledge Hub", "Learn. Stay Safe. Respect Snakes.", fiber.Map{
		"query":  query,
		"snakes": content.SearchSnakes(query),
		"myths":  content.SearchMyths(query),
	}))
}

func (d *Deps) reportBitePage(c *fiber.Ctx) error {
	return c.Render("report_bite", d.page(c, "Report Snake Bite", "Help us save lives", fiber.Map{
		"form": formView{Schema: forms.BiteReport, Values: emptyValues(forms.BiteReport)},
	}))
}

func (d *Deps) handlerSignupPage(c *fiber.Ctx) error {
	return c.Render("handler_signup", d.page(c, "Handler Registration", "Join VenomVision as a certified handler", fiber.Map{
		"form": formView{Schema: forms.HandlerSignup, Values: emptyValues(forms.HandlerSignup)},
	}))
}

func (d *Deps) handlerLoginPage(c *fiber.Ctx) error {
	return c.Render("handler_login", d.page(c, "Handler Login", "", fiber.Map{
		"form": formView{Schema: forms.HandlerLogin, Values: emptyValues(forms.HandlerLogin)},
	}))
}

// handlerDashboardPage is the only protected view. A missing token redirects
// to login; a rejected token additionally clears the stored token — the one
// automatic logout in the application.
func (d *Deps) handlerDashboardPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token, ok := d.Sessions.Token(ctx, sid(c))
	if !ok {
		return c.Redirect("/handler-login")
	}

	profile, err := d.Backend.Profile(ctx, token)
	if err != nil {
		var rej *services.RejectionError
		if errors.Is(err, services.ErrUnauthorized) || errors.As(err, &rej) {
			d.Sessions.ClearToken(ctx, sid(c))
		}
		return c.Redirect("/handler-login")
	}

	return c.Render("handler_dashboard", d.page(c, "Handler Dashboard", "", fiber.Map{
		"profile": profile,
	}))
}

func (d *Deps) adminPage(c *fiber.Ctx) error {
	section := forms.NormalizeAdminSection(c.Query("section"))
	schema := forms.AdminSections[section]
	return c.Render("admin", d.page(c, "VenomVision Admin", "", fiber.Map{
		"section":  section,
		"sections": forms.AdminSectionOrder,
		"form":     formView{Schema: schema, Values: emptyValues(schema)},
	}))
}

// identifyResultPage reads the one-shot identification payload. A direct
// visit, a refresh, or a failed identification all land in the no-result
// state.
func (d *Deps) identifyResultPage(c *fiber.Ctx) error {
	flash := d.Sessions.TakeFlash(c.UserContext(), sid(c))

	data := fiber.Map{}
	var pageFlash *services.Flash
	if flash != nil {
		if flash.Result != nil {
			data["result"] = flash.Result
			data["image"] = flash.ImageURL
			data["hospitals"] = content.Hospitals()
			data["handlers"] = content.Handlers()[:2]
		} else if flash.Message != "" {
			pageFlash = flash
		}
	}
	return c.Render("identify_result", d.pageWithFlash(c, "Identification Result", "", pageFlash, data))
}

func (d *Deps) speciesPage(c *fiber.Ctx) error {
	snake, ok := content.SnakeByID(c.Params("snakeId"))
	if !ok {
		return d.notFound(c)
	}
	return c.Render("identify_result", d.page(c, snake.Name, "", fiber.Map{
		"result":    snake,
		"image":     snake.Image,
		"hospitals": content.Hospitals(),
		"handlers":  content.Handlers()[:2],
	}))
}

func (d *Deps) setPasswordPage(c *fiber.Ctx) error {
	return c.Render("set_password", d.page(c, "Secure Your Account", "Set your password to start using VenomVision", fiber.Map{
		"token": c.Params("token"),
		"form":  formView{Schema: forms.SetPassword, Values: emptyValues(forms.SetPassword)},
	}))
}

func (d *Deps) previewImage(c *fiber.Ctx) error {
	contentType, data, ok := d.Sessions.Preview(c.UserContext(), c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

func (d *Deps) health(c *fiber.Ctx) error {
	if d.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := d.Redis.Ping(ctx).Err(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"redis": "down"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (d *Deps) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("not_found", d.page(c, "Page not found", "", nil))
}
