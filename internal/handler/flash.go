package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next page the client renders.
func AddFlash(c echo.Context, category, message string) {
	flashes := append(readFlashes(c), Flash{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(flashCookieName, flashes)
}

// PopFlashes returns the queued messages and clears them on the client.
func PopFlashes(c echo.Context) []Flash {
	flashes := readFlashes(c)
	if len(flashes) > 0 {
		c.SetCookie(&http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(flashCookieName, []Flash(nil))
	return flashes
}

func readFlashes(c echo.Context) []Flash {
	// Messages queued earlier in this request win over the inbound cookie.
	if queued, ok := c.Get(flashCookieName).([]Flash); ok {
		return queued
	}
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
