package model

// APIResponse is the uniform envelope returned by gateway endpoints.
type APIResponse struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	BaseURL     string `json:"base_url,omitempty"`
}
