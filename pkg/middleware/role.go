package middleware

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

// Constantes para identificar os perfis de operador
const (
	RoleAdmin  = 1
	RoleViewer = 2
)

// RoleMiddleware restringe o acesso aos perfis informados. Quando enabled é falso
// (AUTH_ENABLED=false) a rota fica aberta.
func RoleMiddleware(enabled bool, allowedRoles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
				return
			}

			for _, role := range allowedRoles {
				if claims.RoleID == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).Warnf("Acesso negado para operador=%s, perfil=%d", claims.OperatorName, claims.RoleID)
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

// AdminOnly permite acesso apenas para administradores
func AdminOnly(enabled bool) func(http.Handler) http.Handler {
	return RoleMiddleware(enabled, RoleAdmin)
}
