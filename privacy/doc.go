// Package privacy resolves the set of projects a viewer may see.
//
// A ProjectPolicy is an ordered list of rules evaluated against the viewer
// stored in the request context. Each rule returns a decision:
//
//   - Allow: the viewer sees every project, evaluation stops
//   - Deny: the query is rejected, evaluation stops
//   - Skip (or nil): no decision, the next rule runs
//
// Rules may widen the Scope before skipping, which is how visibility
// classifications are granted:
//
//	policy := privacy.ProjectPolicy{
//	    privacy.HasRole("admin"),
//	    privacy.AllowVisibility(project.VisibilityPublic),
//	}
//	scope, err := policy.Scope(ctx)
//
// The resulting Scope is applied to project queries with Predicate and to
// already loaded rows with Permits. Both agree on every project.
package privacy
