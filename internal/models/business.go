package models

// BusinessIdentity is what the user types into the form. It is sent with
// every request and never stored server-side.
type BusinessIdentity struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Snapshot is the simulated online presence of a business.
type Snapshot struct {
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Headline string  `json:"headline"`
}

// WithHeadline returns a copy of s carrying a new headline. Rating and
// reviews are left as they were.
func (s Snapshot) WithHeadline(headline string) Snapshot {
	s.Headline = headline
	return s
}

type HeadlineResponse struct {
	Headline string `json:"headline"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// APIInfo is served from the root route.
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
