package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/praceando/event-platform/internal/domain"
	"github.com/praceando/event-platform/internal/events"
	"github.com/praceando/event-platform/internal/repository"
	apperrors "github.com/praceando/event-platform/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the request-scoped identity established by the gateway. It is
// rebuilt from the verified token on every request and never cached.
type Principal struct {
	Subject string
	Role    domain.RoleName
}

// Gateway intercepts every inbound request, classifies it against the route
// policy, verifies the bearer token when the route is protected, and loads
// the principal with a fresh role lookup through the credential store.
type Gateway struct {
	policy     *Policy
	tokens     *TokenManager
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewGateway constructs the gateway middleware.
func NewGateway(policy *Policy, tokens *TokenManager, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *Gateway {
	return &Gateway{policy: policy, tokens: tokens, users: users, dispatcher: dispatcher, logger: logger}
}

// Handle enforces the route policy for one request.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	decision := g.policy.Classify(c.Path())
	if decision.Public {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		// protected routes require a credential; the request never reaches
		// downstream handlers without one
		return g.rejectToken(c, "missing bearer token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return g.rejectToken(c, "invalid authorization header")
	}

	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		return g.rejectToken(c, verificationMessage(err))
	}

	// the lookup honors the request deadline; a store timeout surfaces as a
	// transient failure, never an admitted request
	user, err := g.users.FindByEmail(c.UserContext(), claims.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return g.rejectToken(c, verificationMessage(ErrSubjectUnknown))
		}
		return apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return g.rejectToken(c, verificationMessage(ErrSubjectUnknown))
	}

	principal := &Principal{Subject: user.Email, Role: user.Role}
	if !decision.Allows(principal.Role) {
		g.publish(c, events.EventAccessDenied, principal.Subject, events.AccessDeniedPayload{Role: principal.Role})
		return apperrors.NewForbidden("insufficient role for this resource")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (g *Gateway) rejectToken(c *fiber.Ctx, reason string) error {
	g.publish(c, events.EventTokenRejected, "", events.TokenRejectedPayload{Reason: reason})
	return apperrors.NewUnauthorized(reason)
}

func (g *Gateway) publish(c *fiber.Ctx, eventType events.EventType, subject string, payload interface{}) {
	if g.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Path:      c.Path(),
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := g.dispatcher.Publish(c.Context(), event); err != nil && g.logger != nil {
		g.logger.Warn("publish auth event", zap.Error(err))
	}
}

func verificationMessage(err error) string {
	switch err {
	case ErrTokenExpired:
		return "token expired"
	case ErrSignatureInvalid:
		return "token signature invalid"
	case ErrSubjectUnknown:
		return "token subject unknown"
	default:
		return "token malformed"
	}
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
