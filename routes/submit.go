package routes

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/venomvision/venomvision-web/content"
	"github.com/venomvision/venomvision-web/danger"
	"github.com/venomvision/venomvision-web/forms"
	"github.com/venomvision/venomvision-web/services"
)

// errorMessage maps a backend failure onto user-visible text: server-reported
// rejections verbatim, transport failures as a generic retryable message.
func (d *Deps) errorMessage(c *fiber.Ctx, err error) string {
	locale := d.locale(c)
	var rej *services.RejectionError
	switch {
	case errors.As(err, &rej):
		return rej.Message
	case errors.Is(err, services.ErrUnreachable):
		return d.I18n.Translate(locale, "error.network", "Server unreachable. Please try again.")
	default:
		return d.I18n.Translate(locale, "error.generic", "Something went wrong. Please try again.")
	}
}

func (d *Deps) switchLocale(c *fiber.Ctx) error {
	code := d.I18n.Normalize(c.FormValue("code"))
	if err := d.Sessions.SetLocale(c.UserContext(), sid(c), code); err != nil {
		log.Printf("persist locale failed: %v", err)
	}
	back := c.Get(fiber.HeaderReferer)
	if back == "" {
		back = "/index"
	}
	return c.Redirect(back)
}

// captureLocation resolves the single-shot geolocation request. Denied or
// malformed coordinates degrade to the fixed fallback pair; the response says
// so explicitly so the view can tell the user it is not their true location.
func (d *Deps) captureLocation(c *fiber.Ctx) error {
	gps, fallback := services.CaptureLocation(c.FormValue("lat"), c.FormValue("lng"))
	message := ""
	if fallback {
		message = d.I18n.Translate(d.locale(c), "report.fallbackLocation", "Using fallback location: Bangalore")
	}
	return c.JSON(fiber.Map{
		"gps":      gps,
		"fallback": fallback,
		"message":  message,
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (d *Deps) submitIdentify(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("index", d.pageWithFlash(c, "VenomVision", "", nil, fiber.Map{
			"handlers": content.Handlers(),
			"error":    "Please choose a photo to identify.",
		}))
	}
	if !forms.AllowedImageType(file.Header.Get(fiber.HeaderContentType)) {
		return c.Status(fiber.StatusBadRequest).Render("index", d.pageWithFlash(c, "VenomVision", "", nil, fiber.Map{
			"handlers": content.Handlers(),
			"error":    "Unsupported file type. Please upload an image.",
		}))
	}

	data, err := readUpload(file)
	if err != nil {
		return err
	}

	previewID, err := d.Sessions.StagePreview(ctx, sid(c), file.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		log.Printf("stage preview failed: %v", err)
	}

	result, err := d.Backend.Identify(ctx, file.Filename, data)
	if err != nil {
		// The original navigates to the result page with a null result
		// on any failure; the no-result state carries the reason.
		flash := services.Flash{Kind: "error", Message: d.errorMessage(c, err)}
		if putErr := d.Sessions.PutFlash(ctx, sid(c), flash); putErr != nil {
			log.Printf("put flash failed: %v", putErr)
		}
		return c.Redirect("/identify-result")
	}

	flash := services.Flash{Kind: "success", Result: result}
	if previewID != "" {
		flash.ImageURL = "/preview/" + previewID
	}
	if err := d.Sessions.PutFlash(ctx, sid(c), flash); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/identify-result")
}

func (d *Deps) submitBiteReport(c *fiber.Ctx) error {
	ctx := c.UserContext()
	values := forms.BiteReport.Values(func(name string) string { return c.FormValue(name) })

	if missing := forms.BiteReport.Validate(values); len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).Render("report_bite", d.pageWithFlash(c, "Report Snake Bite", "Help us save lives", nil, fiber.Map{
			"form":   formView{Schema: forms.BiteReport, Values: values},
			"errors": missing,
		}))
	}

	if err := d.Backend.ReportBite(ctx, values); err != nil {
		return c.Render("report_bite", d.pageWithFlash(c, "Report Snake Bite", "Help us save lives", nil, fiber.Map{
			"form":  formView{Schema: forms.BiteReport, Values: values},
			"error": d.errorMessage(c, err),
		}))
	}

	message := d.I18n.Translate(d.locale(c), "report.success", "Report submitted successfully!")
	if a := danger.AssessBite(values["symptoms"], values["age"], values["timeOfBite"]); a.Level == "high" || a.Level == "critical" {
		message += " The reported symptoms are serious — call emergency services now."
	}
	if err := d.Sessions.PutFlash(ctx, sid(c), services.Flash{Kind: "success", Message: message}); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/")
}

func (d *Deps) submitHandlerSignup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	values := forms.HandlerSignup.Values(func(name string) string { return c.FormValue(name) })

	renderAgain := func(status int, data fiber.Map) error {
		data["form"] = formView{Schema: forms.HandlerSignup, Values: values}
		return c.Status(status).Render("handler_signup", d.pageWithFlash(c, "Handler Registration", "Join VenomVision as a certified handler", nil, data))
	}

	if missing := forms.HandlerSignup.Validate(values); len(missing) > 0 {
		return renderAgain(fiber.StatusBadRequest, fiber.Map{"errors": missing})
	}

	var imageName string
	var imageData []byte
	if file, err := c.FormFile("profileImage"); err == nil && file != nil {
		if !forms.AllowedImageType(file.Header.Get(fiber.HeaderContentType)) {
			return renderAgain(fiber.StatusBadRequest, fiber.Map{"error": "Unsupported file type. Please upload an image."})
		}
		imageName = file.Filename
		if imageData, err = readUpload(file); err != nil {
			return err
		}
	}

	if err := d.Backend.RegisterHandler(ctx, values, imageName, imageData); err != nil {
		return renderAgain(fiber.StatusOK, fiber.Map{"error": d.errorMessage(c, err)})
	}

	message := d.I18n.Translate(d.locale(c), "signup.success", "Handler registered successfully!")
	if err := d.Sessions.PutFlash(ctx, sid(c), services.Flash{Kind: "success", Message: message}); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/")
}

func (d *Deps) submitLogin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	values := forms.HandlerLogin.Values(func(name string) string { return c.FormValue(name) })

	renderAgain := func(status int, data fiber.Map) error {
		// Passwords are never echoed back into the form.
		values["password"] = ""
		data["form"] = formView{Schema: forms.HandlerLogin, Values: values}
		return c.Status(status).Render("handler_login", d.pageWithFlash(c, "Handler Login", "", nil, data))
	}

	if missing := forms.HandlerLogin.Validate(values); len(missing) > 0 {
		return renderAgain(fiber.StatusBadRequest, fiber.Map{"errors": missing})
	}

	token, err := d.Backend.Login(ctx, values["email"], values["password"])
	if err != nil {
		return renderAgain(fiber.StatusOK, fiber.Map{"error": d.errorMessage(c, err)})
	}

	if err := d.Sessions.SetToken(ctx, sid(c), token); err != nil {
		log.Printf("store token failed: %v", err)
		return renderAgain(fiber.StatusInternalServerError, fiber.Map{"error": "Could not start a session. Please try again."})
	}

	message := d.I18n.Translate(d.locale(c), "login.success", "Login success")
	if err := d.Sessions.PutFlash(ctx, sid(c), services.Flash{Kind: "success", Message: message}); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/handler-dashboard")
}

func (d *Deps) submitSetPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := c.Params("token")
	values := forms.SetPassword.Values(func(name string) string { return c.FormValue(name) })

	renderAgain := func(status int, data fiber.Map) error {
		data["form"] = formView{Schema: forms.SetPassword, Values: emptyValues(forms.SetPassword)}
		data["token"] = token
		return c.Status(status).Render("set_password", d.pageWithFlash(c, "Secure Your Account", "Set your password to start using VenomVision", nil, data))
	}

	if missing := forms.SetPassword.Validate(values); len(missing) > 0 {
		return renderAgain(fiber.StatusBadRequest, fiber.Map{"errors": missing})
	}
	if msg := forms.ValidatePassword(values["password"], values["confirm"]); msg != "" {
		return renderAgain(fiber.StatusBadRequest, fiber.Map{"error": msg})
	}

	if err := d.Backend.SetPassword(ctx, token, values["password"]); err != nil {
		return renderAgain(fiber.StatusOK, fiber.Map{"error": d.errorMessage(c, err)})
	}

	message := d.I18n.Translate(d.locale(c), "setPassword.success", "Password set. Please login.")
	if err := d.Sessions.PutFlash(ctx, sid(c), services.Flash{Kind: "success", Message: message}); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/handler-login")
}

// logout clears the token unconditionally; it never fails from the user's
// point of view and involves no backend round trip.
func (d *Deps) logout(c *fiber.Ctx) error {
	d.Sessions.ClearToken(c.UserContext(), sid(c))
	return c.Redirect("/handler-login")
}

// saveAdminSection handles a management panel save. Switching sections via
// the sidebar discards any unsaved draft in the previous panel without
// confirmation, reproducing the original dashboard.
func (d *Deps) saveAdminSection(c *fiber.Ctx) error {
	ctx := c.UserContext()
	section := forms.NormalizeAdminSection(c.Params("section"))
	schema := forms.AdminSections[section]
	values := schema.Values(func(name string) string { return c.FormValue(name) })

	if missing := schema.Validate(values); len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).Render("admin", d.pageWithFlash(c, "VenomVision Admin", "", nil, fiber.Map{
			"section":  section,
			"sections": forms.AdminSectionOrder,
			"form":     formView{Schema: schema, Values: values},
			"errors":   missing,
		}))
	}

	message := forms.AdminSectionTitle(section) + " data saved successfully"
	if err := d.Sessions.PutFlash(ctx, sid(c), services.Flash{Kind: "success", Message: message}); err != nil {
		log.Printf("put flash failed: %v", err)
	}
	return c.Redirect("/admin?section=" + section)
}
