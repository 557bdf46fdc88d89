package authz

import "context"

// SubscriptionType identifies which part of the platform a subscription
// unlocks. AllModules and Premium are superset types that satisfy any
// specific requirement.
type SubscriptionType string

const (
	// SubscriptionCourses unlocks the course catalogue.
	SubscriptionCourses SubscriptionType = "courses"
	// SubscriptionAssessments unlocks exams and assessments.
	SubscriptionAssessments SubscriptionType = "assessments"
	// SubscriptionLibrary unlocks the learning material library.
	SubscriptionLibrary SubscriptionType = "library"
	// SubscriptionAllModules unlocks every module.
	SubscriptionAllModules SubscriptionType = "all_modules"
	// SubscriptionPremium unlocks every module plus premium features.
	SubscriptionPremium SubscriptionType = "premium"

	// SubscriptionAny matches any active subscription regardless of type.
	SubscriptionAny SubscriptionType = ""
)

// Satisfies reports whether a subscription of this type fulfills the given
// requirement. Superset types satisfy everything; otherwise the types must
// match exactly. An empty requirement is satisfied by any type.
func (t SubscriptionType) Satisfies(required SubscriptionType) bool {
	if t == SubscriptionAllModules || t == SubscriptionPremium {
		return true
	}

	if required == SubscriptionAny {
		return true
	}

	return t == required
}

// SubscriptionService reports a user's active subscription. It is an external
// collaborator of the authorization subsystem; billing owns the data.
type SubscriptionService interface {
	// ActiveSubscription returns the type of the user's active subscription
	// and whether one exists at all.
	ActiveSubscription(ctx context.Context, userID uint64) (SubscriptionType, bool, error)
}
