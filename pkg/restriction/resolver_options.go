package restriction

import "log/slog"

// ResolverOption configures a Resolver instance.
type ResolverOption func(*Resolver)

// WithPolicy selects the cross-term aggregation policy.
// Invalid values are ignored, keeping the PolicyAnyGrants default.
func WithPolicy(p Policy) ResolverOption {
	return func(r *Resolver) {
		switch p {
		case PolicyAnyGrants, PolicyAllMustGrant:
			r.policy = p
		}
	}
}

// WithEditorCheck installs the edit-rights bypass. Without it, no viewer
// bypasses restrictions.
func WithEditorCheck(fn EditorCheckFunc) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.editorCheck = fn
		}
	}
}

// WithDecisionHook appends a post-decision hook. Hooks run in registration
// order after the built-in evaluation.
func WithDecisionHook(fn DecisionHook) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.hooks = append(r.hooks, fn)
		}
	}
}

// WithLogger sets the logger used for fail-open lookup warnings.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}
