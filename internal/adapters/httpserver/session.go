package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	sessionMaxAge = 60 * 60 * 24 * 30
)

// readSession returns the session id carried by the signed cookie, or ""
// when the cookie is missing or was tampered with.
func (s *Server) readSession(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return ""
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return ""
	}
	if _, err := uuid.Parse(string(payload)); err != nil {
		return ""
	}
	return string(payload)
}

func (s *Server) writeSession(w http.ResponseWriter, sid string) {
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write([]byte(sid))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString([]byte(sid))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    val,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSession hands the handler a session id, minting a fresh one for new
// clients.
func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := s.readSession(r)
		if sid == "" {
			sid = uuid.NewString()
			s.writeSession(w, sid)
		}
		h(w, r, sid)
	}
}
