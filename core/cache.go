package core

// FeedInvalidator invalidates a classroom's cached activity feed. Every
// mutation of an assignment, material or class message goes through one so
// the next feed read re-fetches. Full re-fetch is the consistency model;
// invalidation is keyed, never global.
type FeedInvalidator interface {
	Invalidate(classroomID int)
}
