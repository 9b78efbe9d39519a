// Package policy decides who may create, read, change or delete bookings,
// reviews, spots and their images.
//
// Every rule lives in one table keyed by resource kind and action. Rules see
// the actor, the already-loaded resource and the current time; they do no I/O.
package policy

import (
	"time"

	"spotbook/constants"
	apperrors "spotbook/errors"
	"spotbook/models"
)

// Actor is the identity a request runs as. ID 0 is anonymous.
type Actor struct {
	ID uint
}

// Anonymous is the actor of a request without a valid session.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}

type Kind string

const (
	KindBooking     Kind = "booking"
	KindReview      Kind = "review"
	KindReviewImage Kind = "review_image"
	KindSpotImage   Kind = "spot_image"
	KindSpot        Kind = "spot"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) mutates() bool {
	return a != ActionRead
}

type Reason string

const (
	ReasonUnauthenticated Reason = "Unauthenticated"
	ReasonForbidden       Reason = "Forbidden"
	ReasonNotFound        Reason = "NotFound"
	ReasonAlreadyExists   Reason = "AlreadyExists"
	ReasonLimitExceeded   Reason = "LimitExceeded"
	ReasonPastResource    Reason = "PastResource"
)

// Resource carries the records a rule needs. Only the fields relevant to the
// kind being authorized have to be set; a nil target means it was not found.
type Resource struct {
	Kind Kind

	Spot        *models.Spot
	SpotImage   *models.SpotImage
	Booking     *models.Booking
	Review      *models.Review
	ReviewImage *models.ReviewImage

	// ExistingReview is the actor's review of Spot, if any.
	ExistingReview *models.Review
	// ImageCount is the number of images already attached to Review.
	ImageCount int
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason, message string) Decision {
	return Decision{Reason: reason, Message: message}
}

var reasonCodes = map[Reason]apperrors.ErrorCode{
	ReasonUnauthenticated: apperrors.ErrCodeUnauthorized,
	ReasonForbidden:       apperrors.ErrCodeForbidden,
	ReasonNotFound:        apperrors.ErrCodeNotFound,
	ReasonAlreadyExists:   apperrors.ErrCodeAlreadyExists,
	ReasonLimitExceeded:   apperrors.ErrCodeLimitExceeded,
	ReasonPastResource:    apperrors.ErrCodePastResource,
}

// Err returns nil for an allowed decision and an AppError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	code, ok := reasonCodes[d.Reason]
	if !ok {
		code = apperrors.ErrCodeForbidden
	}
	return apperrors.NewAppError(code, d.Message, nil)
}

type ruleKey struct {
	kind   Kind
	action Action
}

type rule func(actor Actor, res Resource, now time.Time) Decision

// Authorize evaluates the rule for (res.Kind, action). A missing target is
// reported before anything else, then anonymous actors are turned away from
// every mutating action.
func Authorize(actor Actor, action Action, res Resource, now time.Time) Decision {
	key := ruleKey{kind: res.Kind, action: action}
	r, ok := rules[key]
	if !ok {
		return deny(ReasonForbidden, "Forbidden")
	}
	if d := exists(key, res); !d.Allowed {
		return d
	}
	if action.mutates() && !actor.Authenticated() {
		return deny(ReasonUnauthenticated, apperrors.ErrAuthenticationRequired.Message)
	}
	return r(actor, res, now)
}

func notFound(err *apperrors.AppError) Decision {
	return deny(ReasonNotFound, err.Message)
}

// exists checks that every record the rule for key reads was found.
func exists(key ruleKey, res Resource) Decision {
	switch key.kind {
	case KindSpot:
		if res.Spot == nil {
			return notFound(apperrors.ErrSpotNotFound)
		}
	case KindSpotImage:
		if key.action == ActionDelete && res.SpotImage == nil {
			return notFound(apperrors.ErrSpotImageNotFound)
		}
		if res.Spot == nil {
			return notFound(apperrors.ErrSpotNotFound)
		}
	case KindBooking:
		if key.action == ActionCreate || key.action == ActionRead {
			if res.Spot == nil {
				return notFound(apperrors.ErrSpotNotFound)
			}
		} else if res.Booking == nil {
			return notFound(apperrors.ErrBookingNotFound)
		}
	case KindReview:
		if key.action == ActionCreate {
			if res.Spot == nil {
				return notFound(apperrors.ErrSpotNotFound)
			}
		} else if res.Review == nil {
			return notFound(apperrors.ErrReviewNotFound)
		}
	case KindReviewImage:
		if key.action == ActionDelete && res.ReviewImage == nil {
			return notFound(apperrors.ErrReviewImageNotFound)
		}
		if res.Review == nil {
			return notFound(apperrors.ErrReviewNotFound)
		}
	}
	return allow()
}

var rules = map[ruleKey]rule{
	{KindBooking, ActionCreate}: createBooking,
	{KindBooking, ActionRead}:   readBooking,
	{KindBooking, ActionUpdate}: updateBooking,
	{KindBooking, ActionDelete}: deleteBooking,

	{KindReview, ActionCreate}: createReview,
	{KindReview, ActionUpdate}: reviewAuthor("User is not authorized to edit this review"),
	{KindReview, ActionDelete}: reviewAuthor("User is not authorized to delete this review"),

	{KindReviewImage, ActionCreate}: createReviewImage,
	{KindReviewImage, ActionDelete}: reviewAuthor("User is not authorized to delete this review image"),

	{KindSpotImage, ActionCreate}: spotOwner("User is not authorized to add an image to this spot"),
	{KindSpotImage, ActionDelete}: spotOwner("Forbidden"),

	{KindSpot, ActionUpdate}: spotOwner("Unauthorized to edit spot"),
	{KindSpot, ActionDelete}: spotOwner("Unauthorized to delete spot"),
}

func createBooking(actor Actor, res Resource, _ time.Time) Decision {
	if res.Spot.IsOwnedBy(actor.ID) {
		return deny(ReasonForbidden, "You cannot book your own spot")
	}
	return allow()
}

// readBooking grants the full view (guest details included). Everyone else
// gets the limited view, so a denial here is not an error for listing.
func readBooking(actor Actor, res Resource, _ time.Time) Decision {
	if !res.Spot.IsOwnedBy(actor.ID) {
		return deny(ReasonForbidden, "Forbidden")
	}
	return allow()
}

func updateBooking(actor Actor, res Resource, now time.Time) Decision {
	if res.Booking.UserID != actor.ID {
		return deny(ReasonForbidden, "Unauthorized to edit this booking")
	}
	if !models.CanEdit(res.Booking, now) {
		return deny(ReasonPastResource, "Past bookings can't be modified")
	}
	return allow()
}

// deleteBooking lets either the guest or the owner of the booked spot cancel.
func deleteBooking(actor Actor, res Resource, now time.Time) Decision {
	isGuest := res.Booking.UserID == actor.ID
	isHost := res.Spot != nil && res.Spot.ID == res.Booking.SpotID && res.Spot.IsOwnedBy(actor.ID)
	if !isGuest && !isHost {
		return deny(ReasonForbidden, "Unauthorized to delete this booking")
	}
	if !models.CanDelete(res.Booking, now) {
		return deny(ReasonPastResource, "Bookings that have been started can't be deleted")
	}
	return allow()
}

func createReview(actor Actor, res Resource, _ time.Time) Decision {
	if res.ExistingReview != nil && res.ExistingReview.UserID == actor.ID {
		return deny(ReasonAlreadyExists, "User already has a review for this spot")
	}
	return allow()
}

func createReviewImage(actor Actor, res Resource, _ time.Time) Decision {
	if res.Review.UserID != actor.ID {
		return deny(ReasonForbidden, "User is not authorized to add an image to this review")
	}
	if res.ImageCount >= constants.MaxReviewImages {
		return deny(ReasonLimitExceeded, "Maximum number of images for this resource was reached")
	}
	return allow()
}

func reviewAuthor(message string) rule {
	return func(actor Actor, res Resource, _ time.Time) Decision {
		if res.Review.UserID != actor.ID {
			return deny(ReasonForbidden, message)
		}
		return allow()
	}
}

func spotOwner(message string) rule {
	return func(actor Actor, res Resource, _ time.Time) Decision {
		if !res.Spot.IsOwnedBy(actor.ID) {
			return deny(ReasonForbidden, message)
		}
		return allow()
	}
}
