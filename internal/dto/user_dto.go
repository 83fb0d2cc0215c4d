package dto

import "time"

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the client-facing user shape. Stats fields are only
// populated by the me/profile endpoints; profileCompleteness only by
// the profile endpoint.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           *string   `json:"name"`
	MemberType     string    `json:"memberType"`
	Verified       bool      `json:"verified"`
	Avatar         *string   `json:"avatar"`
	Bio            *string   `json:"bio"`
	University     *string   `json:"university"`
	EnrollmentYear *int      `json:"enrollmentYear"`
	JoinDate       time.Time `json:"joinDate"`

	SuccessfulTransactions *int     `json:"successfulTransactions,omitempty"`
	AverageRating          *float64 `json:"averageRating,omitempty"`
	RatingCount            *int     `json:"ratingCount,omitempty"`
	ProfileCompleteness    *int     `json:"profileCompleteness,omitempty"`
}

// VerifyRequest verifies a pending registration, either by the token
// from the (simulated) email or directly by temporary id when the
// client uses the development shortcut.
type VerifyRequest struct {
	Token  string `json:"token"`
	TempID string `json:"tempId"`
}

// SkipVerifyRequest creates the account without verification.
type SkipVerifyRequest struct {
	TempID string `json:"tempId"`
}

// VerificationStatusResponse reports whether the caller is verified.
type VerificationStatusResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}
