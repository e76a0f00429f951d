package supabase

import "fmt"

// Error carries the backend's own message so callers can surface it verbatim.
type Error struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (code=%s, status=%d)", e.Message, e.Code, e.HTTPStatus)
	}
	return fmt.Sprintf("supabase: %s (status=%d)", e.Message, e.HTTPStatus)
}
