// Package flash carries one-shot messages, field errors and the previously
// submitted input across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie used for flash data.
const CookieName = "ggr_flash"

// maxCookieBytes keeps the encoded cookie under common browser limits.
const maxCookieBytes = 3800

// Kind classifies the message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Flash is the payload shown on the next rendered page only.
type Flash struct {
	Kind    Kind                `json:"kind"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Old     map[string][]string `json:"old,omitempty"`
}

// Success builds a success flash.
func Success(message string) Flash {
	return Flash{Kind: KindSuccess, Message: message}
}

// Error builds an error flash carrying field errors and old input.
func Error(message string, errs, old map[string][]string) Flash {
	return Flash{Kind: KindError, Message: message, Errors: errs, Old: old}
}

// Store writes and reads flash cookies.
type Store struct {
	Secure bool
}

// Write stores f for the next page render. When the encoded value is too
// large the old input is dropped first, then the field errors.
func (s Store) Write(w http.ResponseWriter, f Flash) {
	f, ok := normalize(f)
	if !ok {
		return
	}
	value, err := encode(f)
	if err == nil && len(value) > maxCookieBytes {
		f.Old = nil
		value, err = encode(f)
	}
	if err == nil && len(value) > maxCookieBytes {
		f.Errors = nil
		value, err = encode(f)
	}
	if err != nil {
		return
	}
	http.SetCookie(w, s.cookie(value, 0))
}

// ReadAndClear returns the pending flash, if any, and expires the cookie.
func (s Store) ReadAndClear(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, s.cookie("", -1))

	f, err := decode(cookie.Value)
	if err != nil {
		return Flash{}, false
	}
	return normalize(f)
}

func (s Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func encode(f Flash) (string, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func decode(raw string) (Flash, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return Flash{}, err
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return Flash{}, err
	}
	return f, nil
}

func normalize(f Flash) (Flash, bool) {
	f.Message = strings.TrimSpace(f.Message)
	if f.Message == "" {
		return Flash{}, false
	}
	switch f.Kind {
	case KindSuccess, KindError:
		return f, true
	}
	return Flash{}, false
}
