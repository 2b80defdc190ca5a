package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix must precede the token in the Authorization header,
	// including the single trailing space.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"
)
