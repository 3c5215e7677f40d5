package middlewares

import (
	"net/http"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
)

// Language negotiates the response language from Accept-Language. A "lang"
// query parameter wins over the header.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pref := r.Header.Get("Accept-Language")
		if q := r.URL.Query().Get("lang"); q != "" {
			pref = q
		}
		lang := i18n.Match(pref)

		w.Header().Set("Content-Language", lang.String())
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), lang)))
	})
}
