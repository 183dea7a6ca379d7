package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// cookieJar writes the httpOnly cookies the API owns.
type cookieJar struct {
	secure bool
}

func (j cookieJar) set(c *gin.Context, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", j.secure, true)
}

func (j cookieJar) clear(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", j.secure, true)
}
