package privacy

import (
	"context"
	"slices"

	"github.com/Endeer/pontoon/project"
)

// Viewer represents the identity making a request.
type Viewer interface {
	// GetID returns the viewer's unique identifier. Anonymous viewers return "".
	GetID() string
	// GetRoles returns the viewer's roles.
	GetRoles() []string
}

// viewerCtxKey is the context key for storing the viewer.
type viewerCtxKey struct{}

// WithViewer returns a new context with the viewer attached.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerCtxKey{}, viewer)
}

// ViewerFromContext retrieves the viewer from the context.
// Returns nil if no viewer is present.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerCtxKey{}).(Viewer)
	return v
}

// SimpleViewer is a basic implementation of the Viewer interface.
type SimpleViewer struct {
	UserID string
	Roles  []string
}

// GetID returns the user ID.
func (v *SimpleViewer) GetID() string {
	return v.UserID
}

// GetRoles returns the user's roles.
func (v *SimpleViewer) GetRoles() []string {
	return v.Roles
}

// DenyIfNoViewer returns a rule that denies access if no viewer is present in the context.
// The HTTP server attaches a viewer only for requests with a valid bearer
// token, so placing this rule first makes a policy reject anonymous requests.
func DenyIfNoViewer() ProjectRule {
	return ContextRule(func(ctx context.Context) error {
		if ViewerFromContext(ctx) == nil {
			return Denyf("privacy: viewer required")
		}
		return Skip
	})
}

// HasRole returns a rule that allows access to every project if the viewer
// has the specified role. Skips otherwise.
//
// Example:
//
//	privacy.ProjectPolicy{
//	    privacy.HasRole("admin"),
//	    privacy.AllowVisibility(project.VisibilityPublic),
//	}
func HasRole(role string) ProjectRule {
	return ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		if slices.Contains(viewer.GetRoles(), role) {
			return Allow
		}
		return Skip
	})
}

// HasAnyRole returns a rule that allows access to every project if the viewer
// has any of the specified roles. Skips otherwise.
func HasAnyRole(roles ...string) ProjectRule {
	return ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		viewerRoles := viewer.GetRoles()
		for _, role := range roles {
			if slices.Contains(viewerRoles, role) {
				return Allow
			}
		}
		return Skip
	})
}

// AllowVisibility returns a rule that lets every viewer see projects with the
// given visibility classifications and then skips.
func AllowVisibility(vs ...string) ProjectRule {
	return ProjectRuleFunc(func(_ context.Context, s *Scope) error {
		s.Add(vs...)
		return Skip
	})
}

// AllowVisibilityForRole returns a rule that lets viewers with role see
// projects with the given visibility classifications and then skips.
func AllowVisibilityForRole(role string, vs ...string) ProjectRule {
	return ProjectRuleFunc(func(ctx context.Context, s *Scope) error {
		if viewer := ViewerFromContext(ctx); viewer != nil && slices.Contains(viewer.GetRoles(), role) {
			s.Add(vs...)
		}
		return Skip
	})
}

// DefaultProjectPolicy lets viewers with adminRole see every project and
// everybody else the public ones.
func DefaultProjectPolicy(adminRole string) ProjectPolicy {
	return ProjectPolicy{
		HasRole(adminRole),
		AllowVisibility(project.VisibilityPublic),
	}
}
