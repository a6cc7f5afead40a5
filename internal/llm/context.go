package llm

import "context"

// tagKey keys the request labels carried on a context. The logging
// decorator reads them back when it records an event.
type tagKey int

const (
	purposeTag tagKey = iota
	planTag
)

// WithPurpose labels the request with what it is for, such as
// "plan-generate" or "plan-refine".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeTag, purpose)
}

// PurposeFrom returns the purpose label, or "unknown" if none was set.
func PurposeFrom(ctx context.Context) string {
	return tagFrom(ctx, purposeTag, "unknown")
}

// WithPlanID records which saved lesson plan a request works on.
// Generation requests have no plan yet and leave it unset.
func WithPlanID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, planTag, id)
}

// PlanIDFrom returns the plan ID set by WithPlanID, or "".
func PlanIDFrom(ctx context.Context) string {
	return tagFrom(ctx, planTag, "")
}

func tagFrom(ctx context.Context, key tagKey, fallback string) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return fallback
}
