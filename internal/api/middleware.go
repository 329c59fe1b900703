package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// sessionCookie names the cookie that carries the game session token.
const sessionCookie = "ntb_session"

// envelopeVersion is the response envelope schema version. Clients check
// the "v" field before parsing the rest.
const envelopeVersion = 1

type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the shared
// envelope: {v, success, data} on success and {v, success, error, ...}
// on failure.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5") {
		msg := http.StatusText(statusCodeOf(status))
		return errorEnvelope{V: envelopeVersion, Success: false, Error: msg, Message: msg}, nil
	}

	return successEnvelope{V: envelopeVersion, Success: true, Data: v}, nil
}

func statusCodeOf(status string) int {
	code := 0
	for _, c := range status {
		if c < '0' || c > '9' {
			break
		}
		code = code*10 + int(c-'0')
	}
	return code
}

// sessionSetCookie builds the Set-Cookie value that hands a new session
// token to the client.
func sessionSetCookie(token string) string {
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return c.String()
}
