package types

// Every API response is wrapped in one of these envelopes so the storefront
// can branch on the presence of "error" without sniffing status codes.

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
