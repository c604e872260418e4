// Package forms defines the field schemas that drive every form view. The
// original client repeated near-identical page components; here each form is
// one descriptor and a shared validation pass.
package forms

import "strings"

type Kind string

const (
	Text     Kind = "text"
	Email    Kind = "email"
	Password Kind = "password"
	Textarea Kind = "textarea"
	Select   Kind = "select"
	ReadOnly Kind = "readonly"
)

type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        Kind
	Required    bool
	Options     []string
	Rows        int
}

type Schema struct {
	Name   string
	Fields []Field
}

// Values extracts this schema's draft from a lookup function, trimming
// surrounding whitespace.
func (s Schema) Values(get func(name string) string) map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = strings.TrimSpace(get(f.Name))
	}
	return values
}

// Validate returns the labels of required fields that are empty. A non-empty
// result means no request may be issued.
func (s Schema) Validate(values map[string]string) []string {
	var missing []string
	for _, f := range s.Fields {
		if f.Required && values[f.Name] == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// AllowedImageType reports whether an uploaded file may be used as a snake
// photo or profile picture.
func AllowedImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

var BiteReport = Schema{
	Name: "report-bite",
	Fields: []Field{
		{Name: "victimName", Label: "Victim Name", Placeholder: "Victim Name", Kind: Text, Required: true},
		{Name: "age", Label: "Age", Placeholder: "Age", Kind: Text},
		{Name: "symptoms", Label: "Symptoms", Placeholder: "Symptoms", Kind: Text},
		{Name: "timeOfBite", Label: "Time of Bite", Placeholder: "Time of Bite", Kind: Text},
		{Name: "location", Label: "Location Description", Placeholder: "Location Description", Kind: Text, Required: true},
		{Name: "gps", Label: "GPS Coordinates", Placeholder: "GPS Coordinates", Kind: ReadOnly},
	},
}

var HandlerSignup = Schema{
	Name: "register-handler",
	Fields: []Field{
		{Name: "name", Label: "Full Name", Placeholder: "Full Name", Kind: Text, Required: true},
		{Name: "phone", Label: "Phone Number", Placeholder: "Phone Number", Kind: Text, Required: true},
		{Name: "experience", Label: "Experience", Placeholder: "Experience (e.g. 10 years)", Kind: Text},
		{Name: "specialization", Label: "Specialization", Placeholder: "Specialization (e.g. Cobra rescue)", Kind: Text},
		{Name: "location", Label: "Location Description", Placeholder: "Location Description", Kind: Text},
		{Name: "gps", Label: "GPS Coordinates", Placeholder: "GPS Coordinates", Kind: ReadOnly},
	},
}

var HandlerLogin = Schema{
	Name: "handler-login",
	Fields: []Field{
		{Name: "email", Label: "Email", Placeholder: "Email", Kind: Email, Required: true},
		{Name: "password", Label: "Password", Placeholder: "Password", Kind: Password, Required: true},
	},
}

var SetPassword = Schema{
	Name: "set-password",
	Fields: []Field{
		{Name: "password", Label: "New password", Placeholder: "New password", Kind: Password, Required: true},
		{Name: "confirm", Label: "Confirm password", Placeholder: "Confirm password", Kind: Password, Required: true},
	},
}

// ValidatePassword applies the set-password rules on top of the required
// check: minimum length and matching confirmation.
func ValidatePassword(password, confirm string) string {
	if len(password) < 6 {
		return "Password must be at least 6 characters."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	return ""
}

// AdminSections maps each dashboard section to its panel schema, in sidebar
// order.
var AdminSectionOrder = []string{"snakes", "handlers", "hospitals", "snake-info", "myths", "settings"}

var AdminSections = map[string]Schema{
	"snakes": {
		Name: "snakes",
		Fields: []Field{
			{Name: "snakeName", Label: "Snake Name", Placeholder: "e.g., Indian Cobra", Kind: Text, Required: true},
			{Name: "scientificName", Label: "Scientific Name", Placeholder: "e.g., Naja naja", Kind: Text},
			{Name: "snakeImage", Label: "Snake Image URL", Placeholder: "https://...", Kind: Text},
			{Name: "dangerLevel", Label: "Danger Level", Kind: Select, Options: []string{"low", "medium", "high", "extreme"}},
			{Name: "venomType", Label: "Venom Type", Placeholder: "e.g., Neurotoxic", Kind: Text},
			{Name: "traits", Label: "Key Traits (one per line)", Kind: Textarea, Rows: 3},
			{Name: "habitat", Label: "Habitat", Placeholder: "Agricultural areas, forests, grasslands", Kind: Textarea, Rows: 2},
		},
	},
	"handlers": {
		Name: "handlers",
		Fields: []Field{
			{Name: "handlerName", Label: "Handler Name", Placeholder: "e.g., Rajesh Kumar", Kind: Text, Required: true},
			{Name: "handlerPhone", Label: "Phone Number", Placeholder: "+91-9876543210", Kind: Text, Required: true},
			{Name: "handlerLocation", Label: "Location", Placeholder: "e.g., Bangalore Central", Kind: Text},
			{Name: "handlerStatus", Label: "Status", Kind: Select, Options: []string{"available", "busy", "unavailable"}},
			{Name: "experience", Label: "Experience", Placeholder: "e.g., 15 years", Kind: Text},
			{Name: "specialization", Label: "Specialization", Placeholder: "e.g., Venomous snakes", Kind: Text},
		},
	},
	"hospitals": {
		Name: "hospitals",
		Fields: []Field{
			{Name: "hospitalName", Label: "Hospital Name", Placeholder: "e.g., Victoria Hospital", Kind: Text, Required: true},
			{Name: "hospitalPhone", Label: "Emergency Phone", Placeholder: "+91-80-26700447", Kind: Text, Required: true},
			{Name: "hospitalLocation", Label: "Location", Placeholder: "e.g., Fort Area, Bangalore", Kind: Text},
			{Name: "latitude", Label: "Latitude", Placeholder: "12.9716", Kind: Text},
			{Name: "longitude", Label: "Longitude", Placeholder: "77.5946", Kind: Text},
		},
	},
	"snake-info": {
		Name: "snake-info",
		Fields: []Field{
			{Name: "infoTitle", Label: "Information Title", Placeholder: "e.g., First Aid for Snake Bites", Kind: Text, Required: true},
			{Name: "infoContent", Label: "Content", Placeholder: "Detailed information content...", Kind: Textarea, Rows: 6},
			{Name: "category", Label: "Category", Kind: Select, Options: []string{"first-aid", "prevention", "identification", "behavior"}},
		},
	},
	"myths": {
		Name: "myths",
		Fields: []Field{
			{Name: "myth", Label: "Myth", Placeholder: "Enter the common myth or misconception...", Kind: Textarea, Rows: 3, Required: true},
			{Name: "truth", Label: "Truth", Placeholder: "Enter the factual correction with scientific backing...", Kind: Textarea, Rows: 4, Required: true},
		},
	},
	"settings": {
		Name: "settings",
		Fields: []Field{
			{Name: "appName", Label: "Application Name", Placeholder: "VenomVision", Kind: Text, Required: true},
			{Name: "emergencyNumber", Label: "Emergency Contact Number", Placeholder: "108", Kind: Text},
			{Name: "maxHandlers", Label: "Max Handlers to Display", Placeholder: "5", Kind: Text},
		},
	},
}

// NormalizeAdminSection keeps the dashboard on a known section; unknown
// values land on the first sidebar entry.
func NormalizeAdminSection(section string) string {
	if _, ok := AdminSections[section]; ok {
		return section
	}
	return "snakes"
}

// AdminSectionTitle is the display name used in the save toast and headings.
func AdminSectionTitle(section string) string {
	switch section {
	case "handlers":
		return "Handler"
	case "hospitals":
		return "Hospital"
	case "snake-info":
		return "Snake Info"
	case "myths":
		return "Myth"
	case "settings":
		return "Settings"
	default:
		return "Snake"
	}
}
