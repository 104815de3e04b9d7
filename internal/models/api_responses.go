package models

// Relation service reachability as reported by the probe job.
const (
	RelationsUp      = "up"
	RelationsDown    = "down"
	RelationsUnknown = "unknown"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse describes the service and its collaborators.
type HealthResponse struct {
	Status    string `json:"status"`
	Lexicon   string `json:"lexicon"`
	Relations string `json:"relations"`
}
