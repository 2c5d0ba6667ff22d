package middleware

import (
	"net/http"
	"strings"
)

// NoIndex запрещает индексацию всех страниц и кеширование публичных
// страниц тегов: содержимое /q/ меняется при активации и не должно
// застревать в кешах
func NoIndex(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Robots-Tag", "noindex, nofollow")
		if strings.HasPrefix(r.URL.Path, "/q/") {
			w.Header().Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}
