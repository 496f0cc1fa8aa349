package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

const FlashCookieName = "citizenai_flash"

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashInfo    FlashKind = "info"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice shown on the next page render.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

func WriteFlash(w http.ResponseWriter, flash Flash) {
	flash, ok := normalizeFlash(flash)
	if !ok {
		return
	}
	payload, err := json.Marshal(flash)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadFlash returns the pending notice, if any, and clears it.
func ReadFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return Flash{}, false
	}
	var flash Flash
	if err := json.Unmarshal(decoded, &flash); err != nil {
		return Flash{}, false
	}
	return normalizeFlash(flash)
}

func normalizeFlash(flash Flash) (Flash, bool) {
	flash.Message = strings.TrimSpace(flash.Message)
	if flash.Message == "" {
		return Flash{}, false
	}
	flash.Kind = FlashKind(strings.ToLower(strings.TrimSpace(string(flash.Kind))))
	switch flash.Kind {
	case FlashSuccess, FlashInfo, FlashWarning, FlashError:
		return flash, true
	default:
		return Flash{}, false
	}
}
