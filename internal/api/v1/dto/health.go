package dto

// StatusResponse is the liveness message served at GET /
type StatusResponse struct {
	Message string `json:"message" example:"Transcription service is running. POST a file to /transcribe to begin."`
}

// HealthResponse is served at GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp int64  `json:"timestamp" example:"1700000000"`
}
