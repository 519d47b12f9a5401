// Package privacy decides which projects a viewer may see.
package privacy

import (
	"context"
	"errors"
	"fmt"
)

// Policy decision sentinel errors.
//
// These errors are used as return values from policy rules to indicate
// how the policy evaluation should proceed. Use errors.Is() to check
// for these values:
//
//	if errors.Is(err, privacy.Allow) { ... }
//	if errors.Is(err, privacy.Deny) { ... }
//	if errors.Is(err, privacy.Skip) { ... }
var (
	// Allow may be returned by rules to indicate that the policy
	// evaluation should terminate with an allow decision.
	// The viewer sees every project.
	Allow = errors.New("pontoon/privacy: allow rule")

	// Deny may be returned by rules to indicate that the policy
	// evaluation should terminate with a deny decision.
	// The query is rejected.
	Deny = errors.New("pontoon/privacy: deny rule")

	// Skip may be returned by rules to indicate that the policy
	// evaluation should continue to the next rule in the chain.
	// This allows rules to abstain from making a decision.
	Skip = errors.New("pontoon/privacy: skip rule")
)

// Allowf returns a formatted wrapped Allow decision.
// The returned error wraps Allow and can be checked with errors.Is(err, Allow).
func Allowf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Allow)...)
}

// Denyf returns a formatted wrapped Deny decision.
// The returned error wraps Deny and can be checked with errors.Is(err, Deny).
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Skipf returns a formatted wrapped Skip decision.
// The returned error wraps Skip and can be checked with errors.Is(err, Skip).
func Skipf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Skip)...)
}

type (
	// ProjectRule decides whether a project query is allowed and may widen
	// the scope of projects the viewer sees.
	ProjectRule interface {
		EvalProjects(context.Context, *Scope) error
	}

	// ProjectPolicy combines multiple project rules into a single policy.
	ProjectPolicy []ProjectRule
)

// ProjectRuleFunc type is an adapter which allows the use of
// ordinary functions as project rules.
type ProjectRuleFunc func(context.Context, *Scope) error

// EvalProjects returns f(ctx, s).
func (f ProjectRuleFunc) EvalProjects(ctx context.Context, s *Scope) error {
	return f(ctx, s)
}

// AlwaysAllowRule returns a rule that always returns an Allow decision.
func AlwaysAllowRule() ProjectRule {
	return fixedDecision{Allow}
}

// AlwaysDenyRule returns a rule that always returns a Deny decision.
func AlwaysDenyRule() ProjectRule {
	return fixedDecision{Deny}
}

// ContextRule creates a project rule from a context evaluation function.
// The provided function receives the context and should return Allow, Deny, Skip, or nil.
// Returning nil is equivalent to returning Skip.
func ContextRule(eval func(context.Context) error) ProjectRule {
	return contextDecision{eval}
}

// Scope evaluates the policy for the viewer in ctx.
//
// Rules run in order. Allow stops the evaluation with an unrestricted
// scope, Deny (or any other error) stops it with that error, and Skip or nil
// moves on. Rules may widen the scope before skipping. When every rule
// skips, the accumulated scope is returned.
func (policy ProjectPolicy) Scope(ctx context.Context) (Scope, error) {
	if decision, ok := DecisionFromContext(ctx); ok {
		if decision == nil {
			return Unrestricted(), nil
		}
		return Scope{}, decision
	}
	var scope Scope
	for _, rule := range policy {
		switch decision := rule.EvalProjects(ctx, &scope); {
		case decision == nil || errors.Is(decision, Skip):
		case errors.Is(decision, Allow):
			return Unrestricted(), nil
		default:
			return Scope{}, decision
		}
	}
	return scope, nil
}

type decisionCtxKey struct{}

// DecisionContext creates a new context from the given parent context with
// a policy decision attached to it. Internal callers use it to bypass the
// policy with Allow.
func DecisionContext(parent context.Context, decision error) context.Context {
	if decision == nil || errors.Is(decision, Skip) {
		return parent
	}
	return context.WithValue(parent, decisionCtxKey{}, decision)
}

// DecisionFromContext retrieves the policy decision from the context.
func DecisionFromContext(ctx context.Context) (error, bool) {
	decision, ok := ctx.Value(decisionCtxKey{}).(error)
	if ok && errors.Is(decision, Allow) {
		decision = nil
	}
	return decision, ok
}

type fixedDecision struct {
	decision error
}

func (f fixedDecision) EvalProjects(context.Context, *Scope) error {
	return f.decision
}

type contextDecision struct {
	eval func(context.Context) error
}

func (c contextDecision) EvalProjects(ctx context.Context, _ *Scope) error {
	return c.eval(ctx)
}
