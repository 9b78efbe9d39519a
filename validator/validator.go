package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"spotbook/constants"
	"spotbook/daterange"
	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgInvalidBody = "Invalid request body"

// messages holds the client-facing wording per "Struct.jsonField". Fields not
// listed fall back to fieldMessages, then to a generic message.
var messages = map[string]string{
	"LoginInput.credential":  "Please provide a valid email or username.",
	"LoginInput.password":    "Please provide a password.",
	"SignupInput.email":      "Please provide a valid email.",
	"SignupInput.username":   "Please provide a username with at least 4 characters.",
	"SignupInput.firstName":  "First Name is required.",
	"SignupInput.lastName":   "Last Name is required.",
	"SignupInput.password":   "Password must be 6 characters or more.",
	"SpotImageInput.preview": "Preview must be true or false",
}

var fieldMessages = map[string]string{
	"address":     "Street address is required",
	"city":        "City is required",
	"state":       "State is required",
	"country":     "Country is required",
	"lat":         "Latitude must be between -90 to 90",
	"lng":         "Longitude must be between -180 to 180",
	"name":        "Name must be less than 50 characters",
	"description": "Description is required",
	"price":       "Price per day must be a positive number",
	"review":      "Review text is required",
	"stars":       "Stars must be an integer from 1 to 5",
	"startDate":   "Start date is required",
	"endDate":     "End date is required",
	"url":         "Url is required",
	"idToken":     "Google ID token is required",
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Namespace()]; ok {
		return m
	}
	if m, ok := fieldMessages[fe.Field()]; ok {
		return m
	}
	return fe.Field() + " is invalid"
}

// FieldErrors turns binding errors into field -> message.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

// BindJSON binds the body into obj and reports failures as a validation
// AppError.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if fields := FieldErrors(err); fields != nil {
			return apperrors.NewFieldError(apperrors.ErrCodeValidation, "Bad Request", fields)
		}
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, msgInvalidBody, err)
	}
	return nil
}

func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewFieldError(apperrors.ErrCodeValidation, "Bad Request", fields)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateSpotInput catches what binding tags cannot, such as whitespace-only text.
func ValidateSpotInput(in dto.SpotInput) error {
	fields := map[string]string{}
	for name, value := range map[string]string{
		"address":     in.Address,
		"city":        in.City,
		"state":       in.State,
		"country":     in.Country,
		"name":        in.Name,
		"description": in.Description,
	} {
		if blank(value) {
			fields[name] = fieldMessages[name]
		}
	}
	if len(in.Name) > constants.MaxSpotNameLength {
		fields["name"] = fieldMessages["name"]
	}
	return invalid(fields)
}

func ValidateReviewInput(in dto.ReviewInput) error {
	fields := map[string]string{}
	if blank(in.Review) {
		fields["review"] = fieldMessages["review"]
	}
	if in.Stars == nil || *in.Stars < 1 || *in.Stars > 5 {
		fields["stars"] = fieldMessages["stars"]
	}
	return invalid(fields)
}

// ValidateBookingDates parses the requested stay. Ordering and past-date
// rules belong to the booking service.
func ValidateBookingDates(in dto.BookingInput) (daterange.Range, error) {
	fields := map[string]string{}
	start, err := daterange.ParseDate(in.StartDate)
	if err != nil {
		fields["startDate"] = "Start date must be a valid date"
	}
	end, err := daterange.ParseDate(in.EndDate)
	if err != nil {
		fields["endDate"] = "End date must be a valid date"
	}
	if err := invalid(fields); err != nil {
		return daterange.Range{}, err
	}
	return daterange.New(start, end), nil
}

func parseFloat(raw string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func or(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// ValidateSpotQuery parses GET /api/spots filters. It returns the page, the
// page size and the filter, or a validation error listing every bad
// parameter.
func ValidateSpotQuery(q dto.SpotQuery) (int, int, store.SpotFilter, error) {
	fields := map[string]string{}
	page, size := constants.DefaultSpotsPage, constants.DefaultSpotsSize
	if q.Page != "" {
		n, err := strconv.Atoi(q.Page)
		if err != nil || n < 1 {
			fields["page"] = "Page must be an integer greater than 0"
		}
		page = n
	}
	if q.Size != "" {
		n, err := strconv.Atoi(q.Size)
		if err != nil || n < 1 {
			fields["size"] = "Size must be an integer greater than 0"
		}
		size = n
	}
	if size > constants.MaxSpotsSize {
		size = constants.MaxSpotsSize
	}

	var filter store.SpotFilter
	var ok bool
	if filter.MinLat, ok = parseFloat(q.MinLat); !ok || or(filter.MinLat, -90) < -90 || or(filter.MinLat, -90) > 90 {
		fields["minLat"] = "Minimum latitude must be between -90 to 90"
	}
	if filter.MaxLat, ok = parseFloat(q.MaxLat); !ok || (filter.MaxLat != nil && (*filter.MaxLat > 90 || *filter.MaxLat <= or(filter.MinLat, -90))) {
		fields["maxLat"] = "Maximum latitude must be between -90 to 90 and greater than minimum latitude if specified"
	}
	if filter.MinLng, ok = parseFloat(q.MinLng); !ok || or(filter.MinLng, -180) < -180 || or(filter.MinLng, -180) > 180 {
		fields["minLng"] = "Minimum longitude must be between -180 to 180"
	}
	if filter.MaxLng, ok = parseFloat(q.MaxLng); !ok || (filter.MaxLng != nil && *filter.MaxLng > 180) {
		fields["maxLng"] = "Maximum longitude must be less than 180"
	} else if filter.MaxLng != nil && *filter.MaxLng <= or(filter.MinLng, -180) {
		fields["maxLng"] = "Maximum longitude must be greater than minimum longitude"
	}
	if filter.MinPrice, ok = parseFloat(q.MinPrice); !ok || or(filter.MinPrice, 0) < 0 {
		fields["minPrice"] = "Minimum price must be greater than or equal to 0"
	}
	if filter.MaxPrice, ok = parseFloat(q.MaxPrice); !ok || (filter.MaxPrice != nil && *filter.MaxPrice <= or(filter.MinPrice, 0)) {
		fields["maxPrice"] = "Maximum price must be greater than 0 and greater than minimum price if specified"
	}

	if err := invalid(fields); err != nil {
		return 0, 0, store.SpotFilter{}, err
	}
	return page, size, filter, nil
}
