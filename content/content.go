// Package content holds the static reference data rendered by the knowledge
// hub, the handler directory, and the hospital list. The backend will serve
// these eventually; until then they are the same fixtures the client shipped
// with.
package content

import (
	"strings"

	"github.com/venomvision/venomvision-web/services"
)

type Myth struct {
	ID    string
	Myth  string
	Truth string
}

type Hospital struct {
	Name     string
	Location string
	Distance string
	Phone    string
}

var handlers = []services.Handler{
	{ID: "1", Name: "Rajesh Kumar", Phone: "+91-9876543210", Location: "Bangalore Central", Status: "available", Experience: "15 years", Specialization: "Venomous snakes"},
	{ID: "2", Name: "Suresh Wildlife Rescue", Phone: "+91-9876543211", Location: "Whitefield", Status: "busy", Experience: "8 years", Specialization: "Cobra specialist"},
	{ID: "3", Name: "Karnataka Forest Dept", Phone: "+91-9876543212", Location: "HSR Layout", Status: "available", Experience: "Government service", Specialization: "All species"},
	{ID: "4", Name: "Wildlife SOS", Phone: "+91-9876543213", Location: "Marathahalli", Status: "unavailable", Experience: "10 years", Specialization: "Rescue & relocation"},
}

var snakes = []services.Snake{
	{ID: "1", Name: "Indian Cobra", ScientificName: "Naja naja", Image: "https://images.unsplash.com/photo-1516728778615-2d590ea18ee2?w=300&h=200&fit=crop", DangerLevel: "extreme", VenomType: "Neurotoxic",
		Traits:  []string{"Black body with white spectacle marks", "Hood when threatened", "3-5 feet long"},
		Habitat: "Agricultural areas, forests, grasslands",
		FirstAid: []string{
			"Keep the victim calm and still",
			"Remove rings and tight clothing near the bite",
			"Immobilize the bitten limb below heart level",
			"Get to a hospital with antivenom immediately",
		}},
	{ID: "2", Name: "Russell's Viper", ScientificName: "Daboia russelii", Image: "https://images.unsplash.com/photo-1603662857013-adcb4c2f8e85?w=300&h=200&fit=crop", DangerLevel: "high", VenomType: "Hemotoxic",
		Traits:  []string{"Chain of brown oval spots", "Loud hissing when disturbed", "Triangular head"},
		Habitat: "Open grasslands, scrub jungles, farmland",
		FirstAid: []string{
			"Keep the victim calm and still",
			"Do not cut the wound or attempt to suck out venom",
			"Get to a hospital with antivenom immediately",
		}},
	{ID: "3", Name: "Indian Python", ScientificName: "Python molurus", Image: "https://images.unsplash.com/photo-1544535323e02-1fab9b84b42a?w=300&h=200&fit=crop", DangerLevel: "low", VenomType: "Non-venomous",
		Traits:  []string{"Thick muscular body", "Blotched pattern", "Up to 20 feet long"},
		Habitat: "Forests, marshes, rocky outcrops"},
	{ID: "4", Name: "Common Krait", ScientificName: "Bungarus caeruleus", Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300&h=200&fit=crop", DangerLevel: "extreme", VenomType: "Neurotoxic",
		Traits:  []string{"Glossy black with white bands", "Nocturnal", "Painless bite"},
		Habitat: "Fields, low scrub, near human dwellings",
		FirstAid: []string{
			"Keep the victim awake and calm",
			"Watch for drooping eyelids and difficulty breathing",
			"Get to a hospital with antivenom immediately",
		}},
	{ID: "5", Name: "Rat Snake", ScientificName: "Ptyas mucosa", Image: "https://images.unsplash.com/photo-1544835796-1f40ad6e53c6?w=300&h=200&fit=crop", DangerLevel: "low", VenomType: "Non-venomous",
		Traits:  []string{"Slender fast mover", "Often mistaken for cobra", "Keeled scales"},
		Habitat: "Farmland, urban gardens, wetlands"},
	{ID: "6", Name: "Bamboo Pit Viper", ScientificName: "Trimeresurus gramineus", Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300&h=200&fit=crop", DangerLevel: "medium", VenomType: "Hemotoxic",
		Traits:  []string{"Bright green body", "Heat-sensing pits", "Prehensile tail"},
		Habitat: "Bamboo groves, dense foliage"},
}

var myths = []Myth{
	{ID: "1", Myth: "All snakes are dangerous and should be killed",
		Truth: "Most snakes are harmless and play a vital role in controlling rodent populations. Only about 15% of snake species in India are venomous."},
	{ID: "2", Myth: "Snakes drink milk and are attracted to it",
		Truth: "Snakes are lactose intolerant and cannot digest milk. This is a complete myth popularized by movies and folklore."},
	{ID: "3", Myth: "Snake charmers' snakes have their fangs removed",
		Truth: "While some unethical practices exist, many snake charmers work with non-venomous species. However, the practice is harmful to snakes and should be discouraged."},
	{ID: "4", Myth: "Cutting and sucking venom from a bite helps",
		Truth: "This is extremely dangerous and can cause more harm. It can introduce bacteria and spread venom. Only antivenom at a hospital can neutralize snake venom."},
	{ID: "5", Myth: "Snakes chase humans to attack them",
		Truth: "Snakes are naturally afraid of humans and will only attack when threatened or cornered. They prefer to flee rather than fight."},
	{ID: "6", Myth: "Baby snakes are more venomous than adults",
		Truth: "While baby snakes may inject more venom proportionally, adult snakes deliver much larger amounts of venom and are generally more dangerous."},
}

var hospitals = []Hospital{
	{Name: "Victoria Hospital", Location: "Fort Area", Distance: "2.5 km", Phone: "+91-80-26700447"},
	{Name: "Manipal Hospital", Location: "HAL Airport Road", Distance: "5.2 km", Phone: "+91-80-25024444"},
}

func Handlers() []services.Handler { return handlers }
func Snakes() []services.Snake     { return snakes }
func Myths() []Myth                { return myths }
func Hospitals() []Hospital        { return hospitals }

// SnakeByID resolves the parameterized species view.
func SnakeByID(id string) (*services.Snake, bool) {
	for i := range snakes {
		if snakes[i].ID == id {
			return &snakes[i], true
		}
	}
	return nil, false
}

// SearchSnakes filters by case-insensitive substring over name and venom
// type. An empty term returns everything.
func SearchSnakes(term string) []services.Snake {
	return filterSnakes(snakes, term, func(s services.Snake) []string {
		return []string{s.Name, s.VenomType}
	})
}

// SearchMyths filters over both the myth and its correction.
func SearchMyths(term string) []Myth {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return myths
	}
	filtered := make([]Myth, 0)
	for _, m := range myths {
		if strings.Contains(strings.ToLower(m.Myth), term) || strings.Contains(strings.ToLower(m.Truth), term) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func filterSnakes(items []services.Snake, term string, get func(services.Snake) []string) []services.Snake {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	filtered := make([]services.Snake, 0)
	for _, item := range items {
		for _, field := range get(item) {
			if strings.Contains(strings.ToLower(field), term) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// HandlerStatusLabel maps a handler status to its badge text.
func HandlerStatusLabel(status string) string {
	switch status {
	case "available":
		return "Available"
	case "busy":
		return "Busy"
	default:
		return "Unavailable"
	}
}
