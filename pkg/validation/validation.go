// Package validation holds the per-endpoint request validators. Each
// validator is a pure function that inspects the payload and returns
// every violation it finds, so the client sees all problems in a single
// round trip instead of one per request.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validCategories  = []string{"TEXTBOOK", "ELECTRONICS", "FURNITURE", "APPAREL", "SPORTS"}
	validConditions  = []string{"NEW", "LIKE_NEW", "GOOD", "FAIR", "POOR"}
	validMemberTypes = []string{"STUDENT", "ASSOCIATE"}

	validate = validator.New()
)

const maxPrice = 1_000_000

// IsValidCategory reports whether c is one of the listing categories.
func IsValidCategory(c string) bool { return contains(validCategories, c) }

// IsValidCondition reports whether c is one of the item conditions.
func IsValidCondition(c string) bool { return contains(validConditions, c) }

// ValidateItem checks an item create/update payload. The payload is
// expected in storage field naming (see fieldconv.NormalizeItemPayload).
func ValidateItem(payload map[string]any) []string {
	var errs []string

	title, _ := payload["title"].(string)
	if title == "" {
		errs = append(errs, "title is required")
	} else if len(strings.TrimSpace(title)) < 2 {
		errs = append(errs, "title must be at least 2 characters")
	} else if len(title) > 200 {
		errs = append(errs, "title must not exceed 200 characters")
	}

	if description, ok := payload["description"].(string); ok && len(description) > 2000 {
		errs = append(errs, "description must not exceed 2000 characters")
	}

	category, _ := payload["category"].(string)
	if !IsValidCategory(category) {
		errs = append(errs, "category must be one of: "+strings.Join(validCategories, ", "))
	}

	price, present := payload["price"]
	if !present || price == nil {
		errs = append(errs, "price is required")
	} else if value, ok := toNumber(price); !ok {
		errs = append(errs, "price must be a valid number")
	} else if value < 0 {
		errs = append(errs, "price must not be negative")
	} else if value > maxPrice {
		errs = append(errs, "price must not exceed 1,000,000")
	}

	condition, _ := payload["condition"].(string)
	if !IsValidCondition(condition) {
		errs = append(errs, "condition must be one of: "+strings.Join(validConditions, ", "))
	}

	if raw, present := payload["images"]; present && raw != nil {
		images, ok := raw.([]any)
		if !ok {
			errs = append(errs, "images must be a list")
		} else if len(images) > 5 {
			errs = append(errs, "at most 5 images are allowed")
		}
	}

	return errs
}

// ValidateItemUpdate checks a partial item update payload: only the
// fields actually supplied are validated.
func ValidateItemUpdate(payload map[string]any) []string {
	var errs []string

	if raw, present := payload["title"]; present {
		title, _ := raw.(string)
		if len(strings.TrimSpace(title)) < 2 {
			errs = append(errs, "title must be at least 2 characters")
		} else if len(title) > 200 {
			errs = append(errs, "title must not exceed 200 characters")
		}
	}

	if description, ok := payload["description"].(string); ok && len(description) > 2000 {
		errs = append(errs, "description must not exceed 2000 characters")
	}

	if raw, present := payload["category"]; present {
		category, _ := raw.(string)
		if !IsValidCategory(category) {
			errs = append(errs, "category must be one of: "+strings.Join(validCategories, ", "))
		}
	}

	if raw, present := payload["price"]; present {
		if value, ok := toNumber(raw); !ok {
			errs = append(errs, "price must be a valid number")
		} else if value < 0 {
			errs = append(errs, "price must not be negative")
		} else if value > maxPrice {
			errs = append(errs, "price must not exceed 1,000,000")
		}
	}

	if raw, present := payload["condition"]; present {
		condition, _ := raw.(string)
		if !IsValidCondition(condition) {
			errs = append(errs, "condition must be one of: "+strings.Join(validConditions, ", "))
		}
	}

	if raw, present := payload["status"]; present {
		status, _ := raw.(string)
		if status != "AVAILABLE" && status != "RESERVED" && status != "SOLD" {
			errs = append(errs, "status must be one of: AVAILABLE, RESERVED, SOLD")
		}
	}

	if raw, present := payload["images"]; present && raw != nil {
		images, ok := raw.([]any)
		if !ok {
			errs = append(errs, "images must be a list")
		} else if len(images) > 5 {
			errs = append(errs, "at most 5 images are allowed")
		}
	}

	return errs
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	MemberType string `json:"memberType"`
	Name       string `json:"name"`
}

// ValidateRegister checks a registration payload. Student and associate
// members must register with a university email (.edu domain).
func ValidateRegister(in RegisterInput) []string {
	var errs []string

	if in.Email == "" {
		errs = append(errs, "email is required")
	} else if err := validate.Var(in.Email, "email"); err != nil {
		errs = append(errs, "email format is invalid")
	} else if len(in.Email) > 255 {
		errs = append(errs, "email must not exceed 255 characters")
	} else if contains(validMemberTypes, in.MemberType) && !strings.HasSuffix(domainOf(in.Email), ".edu") {
		errs = append(errs, "student and associate members must register with a university email (.edu domain)")
	}

	if in.Password == "" {
		errs = append(errs, "password is required")
	} else if len(in.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	} else if len(in.Password) > 100 {
		errs = append(errs, "password must not exceed 100 characters")
	}

	if !contains(validMemberTypes, in.MemberType) {
		errs = append(errs, "member type must be one of: "+strings.Join(validMemberTypes, ", "))
	}

	if in.Name != "" {
		if len(strings.TrimSpace(in.Name)) < 2 {
			errs = append(errs, "name must be at least 2 characters")
		} else if len(in.Name) > 100 {
			errs = append(errs, "name must not exceed 100 characters")
		}
	}

	return errs
}

// ValidateLogin checks for presence only. Format problems surface as a
// generic credential mismatch so the response does not reveal which
// field was wrong.
func ValidateLogin(email, password string) []string {
	var errs []string
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(password) == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// ProfileUpdateInput is the partial profile update payload. Nil fields
// mean "no change".
type ProfileUpdateInput struct {
	Name           *string `json:"name"`
	Avatar         *string `json:"avatar"`
	Bio            *string `json:"bio"`
	University     *string `json:"university"`
	EnrollmentYear *int    `json:"enrollmentYear"`
}

// ValidateProfileUpdate checks a profile update payload.
func ValidateProfileUpdate(in ProfileUpdateInput) []string {
	var errs []string

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if len(trimmed) > 0 && len(trimmed) < 2 {
			errs = append(errs, "name must be at least 2 characters")
		} else if len(*in.Name) > 100 {
			errs = append(errs, "name must not exceed 100 characters")
		}
	}

	if in.Bio != nil && len(*in.Bio) > 500 {
		errs = append(errs, "bio must not exceed 500 characters")
	}

	if in.University != nil && len(*in.University) > 200 {
		errs = append(errs, "university must not exceed 200 characters")
	}

	if in.EnrollmentYear != nil {
		maxYear := time.Now().Year() + 10
		if *in.EnrollmentYear < 1900 || *in.EnrollmentYear > maxYear {
			errs = append(errs, fmt.Sprintf("enrollment year must be between 1900 and %d", maxYear))
		}
	}

	return errs
}

// ValidateRating checks a rating submission.
func ValidateRating(ratedUserID string, rating int, comment *string) []string {
	var errs []string
	if strings.TrimSpace(ratedUserID) == "" {
		errs = append(errs, "ratedUserId is required")
	}
	if rating < 1 || rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if comment != nil && len(*comment) > 1000 {
		errs = append(errs, "comment must not exceed 1000 characters")
	}
	return errs
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
