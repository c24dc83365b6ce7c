package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const staffKey ctxKey = "staff"

// StaffContext lee el header X-Staff-ID y lo deja en el contexto.
// La autenticación real vive en el gateway del refugio; acá solo
// necesitamos la identidad para los campos de auditoría (created_by).
// Sin header, el request sigue igual con identidad vacía.
func StaffContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := strings.TrimSpace(r.Header.Get("X-Staff-ID")); id != "" {
				ctx := context.WithValue(r.Context(), staffKey, id)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetStaffID(ctx context.Context) string {
	v := ctx.Value(staffKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
