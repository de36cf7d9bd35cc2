package middleware

import (
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

// AdminOnly guards routes that mutate other employees' data.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Role(r) != string(user.RoleAdmin) {
			response.Forbidden(w, user.ErrAdminPrivilegeRequired.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
