// Package principal carries the authenticated user through a request.
package principal

import (
	"context"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
)

type Principal struct {
	UserID   string
	Email    string
	Username string
	Role     string
}

func (p Principal) IsHotelOwner() bool {
	return p.Role == constant.RoleHotelOwner
}

func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, constant.ContextKeyPrincipal, p)
}

// FromContext reports false when the request was never authenticated.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(constant.ContextKeyPrincipal).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}

	return p, true
}

// Require is FromContext for handlers behind the auth middleware.
func Require(ctx context.Context) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return p, failure.Unauthorized("Authentication required") //nolint:wrapcheck
	}

	return p, nil
}
