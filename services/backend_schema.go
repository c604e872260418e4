package services

// Snake is the identification record returned by the backend and rendered on
// the result page.
type Snake struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ScientificName string   `json:"scientificName"`
	Image          string   `json:"image"`
	DangerLevel    string   `json:"dangerLevel"`
	VenomType      string   `json:"venomType"`
	Traits         []string `json:"traits"`
	Habitat        string   `json:"habitat"`
	FirstAid       []string `json:"firstAid"`
}

// Handler is a certified snake handler profile.
type Handler struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Experience     string `json:"experience"`
	Specialization string `json:"specialization"`
}

type identifyResponse struct {
	Success bool   `json:"success"`
	Result  *Snake `json:"result"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type profileResponse struct {
	Success bool     `json:"success"`
	Handler *Handler `json:"handler"`
	Message string   `json:"message"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
