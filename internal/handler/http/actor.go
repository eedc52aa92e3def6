package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
)

// actorFromRequest builds the audit actor from verified token claims. The
// auth middleware has already rejected requests without a valid token, so
// missing claims degrade to an operator role rather than failing here.
func actorFromRequest(r *http.Request) runlog.Actor {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return runlog.Actor{Role: runlog.RoleOperator}
	}

	actor := runlog.Actor{Role: runlog.RoleOperator}
	if id, ok := claims["user_id"].(string); ok {
		actor.ID = id
	}
	if role, ok := claims["role"].(string); ok && role == runlog.RoleAdmin {
		actor.Role = runlog.RoleAdmin
	}
	return actor
}
