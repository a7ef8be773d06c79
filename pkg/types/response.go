package types

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPending = "pending"
)

// Envelope is the wire shape every response carries.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Details any    `json:"details,omitempty"`
}
