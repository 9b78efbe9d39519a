package constants

// Booking lifecycle states
const (
	BookingStateFuture  = "future"
	BookingStateActive  = "active"
	BookingStatePast    = "past"
	BookingStateDeleted = "deleted"
)

// Limits
const (
	MaxReviewImages    = 10
	MaxSpotNameLength  = 50
	MaxReviewLength    = 4000
	MinUsernameLength  = 4
	MinPasswordLength  = 6
	DefaultSpotsPage   = 1
	DefaultSpotsSize   = 20
	MaxSpotsSize       = 100
	DefaultTokenMinute = 60 * 24 * 7
)

// Date layouts accepted on the wire
const (
	DateLayout = "2006-01-02"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextRequestID = "requestID"
	TokenCookieName  = "token"
)
