package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
)

// identity is the caller extracted from JWT claims.
type identity struct {
	UserID    string
	CompanyID string
	Role      directory.Role
}

// identityFromContext extracts user_id, company_id and role from the
// verified token claims.
func identityFromContext(ctx context.Context) (identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return identity{}, fmt.Errorf("user_id not found in claims")
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return identity{}, fmt.Errorf("company_id not found in claims")
	}
	role, _ := claims["role"].(string)

	return identity{
		UserID:    userID,
		CompanyID: companyID,
		Role:      directory.Role(role),
	}, nil
}
