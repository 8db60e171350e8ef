package middleware

import (
	"errors"
	"hotelbook/infras/identity"
	"hotelbook/infras/otel"
	userDto "hotelbook/internal/domains/user/model/dto"
	userService "hotelbook/internal/domains/user/service"
	"hotelbook/permissions"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	verifier   identity.Verifier
	users      userService.User
	otel       otel.Otel
	permission *permissions.PermissionData
}

func NewAuthRoleMiddleware(verifier identity.Verifier, users userService.User, otel otel.Otel, permission *permissions.PermissionData) AuthRole {
	return &authRoleImpl{
		verifier:   verifier,
		users:      users,
		otel:       otel,
		permission: permission,
	}
}

// routePermission resolves the chi pattern the request will be routed to. ok is false for
// unknown routes, which are left to the router's 404.
func (m *authRoleImpl) routePermission(request *http.Request) (permissions.Permission, string, bool) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return permissions.Permission{}, constant.Empty, false
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if path == constant.Empty {
		return permissions.Permission{}, path, false
	}

	if m.permission == nil {
		return permissions.Permission{}, path, true
	}

	return m.permission.FindPermissions(path, request.Method), path, true
}

// Auth verifies the bearer token with the identity provider and attaches the principal. The
// local user row is created on first sight.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		permission, path, found := m.routePermission(request)
		if !found || permission.Skip || (m.permission != nil && m.permission.Skip) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		token, err := identity.ExtractBearerToken(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err := failure.Unauthorized("Missing or malformed authorization header")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ident, err := m.verifier.Verify(ctx, token)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, identity.ErrExpiredToken) {
				message = "Token has expired"
			}

			log.Debug().Err(err).Msg("rejected bearer token")

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		user, err := m.users.EnsureUser(ctx, userDto.EnsureUserRequest{
			ID:       ident.Subject,
			Email:    ident.Email,
			Username: ident.Username,
			Image:    ident.Image,
		})
		if err != nil {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		scope.SetAttribute("user.id", user.ID)
		scope.End()

		ctx = principal.WithContext(request.Context(), principal.Principal{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role,
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		permission, _, found := m.routePermission(request)
		if !found || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		p, ok := principal.FromContext(request.Context())
		if !ok {
			err := failure.Unauthorized("Authentication required")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if !permission.Allows(p.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     p.Role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
