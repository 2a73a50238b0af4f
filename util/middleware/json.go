package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/mkrogh/project-calculator/util"
)

// JsonBodyMiddleware decodes the request body and stores it in the request
// context under "json". Mutating routes are registered behind it.
func JsonBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Println("bad json body:", err)
			util.WriteStatus(w, http.StatusBadRequest)
			return
		}
		ctx := context.WithValue(r.Context(), "json", body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
