package guard

import "net/http"

func hasCookie(r *http.Request, name string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value != ""
}

// RequireCookie sends requests without the named cookie to loginPath with a
// temporary redirect.
func RequireCookie(name, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasCookie(r, name) {
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfCookie sends requests that carry the named cookie to dest. It
// keeps signed-in users away from the login and register pages.
func RedirectIfCookie(name, dest string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasCookie(r, name) {
				http.Redirect(w, r, dest, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
