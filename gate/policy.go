package gate

import "context"

// Policy defines authorization rules for a resource type.
// U is the subject type (e.g. uint for a user id, or a struct with a role).
type Policy[U any] interface {
	// Can returns true if subject is authorized to perform action on the
	// resource type this policy was registered for.
	Can(ctx context.Context, subject U, action Action) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc[U any] func(ctx context.Context, subject U, action Action) bool

func (f PolicyFunc[U]) Can(ctx context.Context, subject U, action Action) bool {
	return f(ctx, subject, action)
}
