package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
)

// BasicAuth gates the BM routes behind the shared secret from config.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Basic ") {
				requireAuth(w)
				return
			}

			creds, err := base64.StdEncoding.DecodeString(header[len("Basic "):])
			if err != nil {
				requireAuth(w)
				return
			}

			pair := strings.SplitN(string(creds), ":", 2)
			if len(pair) != 2 {
				requireAuth(w)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(pair[0]), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pair[1]), []byte(password)) == 1
			if !userOK || !passOK {
				requireAuth(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="BM Area"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
