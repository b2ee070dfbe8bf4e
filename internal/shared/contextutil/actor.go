package contextutil

import "context"

const (
	RoleBranchAdmin = "BRANCH_ADMIN"
	RoleEmployer    = "EMPLOYER"
)

// Actor is the authenticated caller of a workflow operation. It is always
// built from verified token claims, never from a request body.
type Actor struct {
	ID         string
	Role       string
	EmployerID string
}

func (a Actor) IsBranchAdmin() bool {
	return a.Role == RoleBranchAdmin
}

// CanActForEmployer reports whether the actor may operate on resources of employerID.
func (a Actor) CanActForEmployer(employerID string) bool {
	if a.IsBranchAdmin() {
		return true
	}
	return a.Role == RoleEmployer && a.EmployerID != "" && a.EmployerID == employerID
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor returns the actor placed by the auth middleware.
func GetActor(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	a, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || a.ID == "" {
		return Actor{}, false
	}
	return a, true
}
