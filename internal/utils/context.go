package utils

import (
	"context"
	"net/http"

	"github.com/fopmanager/fop-api/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser stores the authenticated claims in the request context
func WithUser(ctx context.Context, user *models.JWT) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser returns the authenticated claims, or nil on an unauthenticated request
func GetUser(r *http.Request) *models.JWT {
	user, _ := r.Context().Value(userContextKey).(*models.JWT)
	return user
}
