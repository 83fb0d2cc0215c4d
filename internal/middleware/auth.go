package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
)

// Context keys set by the auth middleware.
const (
	ContextUserID     = "user_id"
	ContextEmail      = "user_email"
	ContextMemberType = "member_type"
)

// Claims is the bearer-token payload: user id, email and member type.
type Claims struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	MemberType string `json:"memberType"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed, time-limited bearer token for a user.
func GenerateToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     user.ID,
		Email:      user.Email,
		MemberType: user.MemberType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type AuthMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo repository.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo, secret: secret}
}

func (m *AuthMiddleware) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid bearer token. A missing
// token is 401; a malformed, expired or forged one is 403.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication token required"})
			c.Abort()
			return
		}

		claims, err := m.parseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextMemberType, claims.MemberType)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// proceeds anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := m.parseToken(tokenString); err == nil {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextMemberType, claims.MemberType)
		}
		c.Next()
	}
}

// RequireMemberType gates a route to the given member types. The type
// is re-fetched from the store rather than trusted from the token, in
// case it changed since the token was issued.
func (m *AuthMiddleware) RequireMemberType(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			c.Abort()
			return
		}

		memberType, err := m.userRepo.MemberType(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "user not found"})
			c.Abort()
			return
		}

		for _, t := range allowed {
			if t == memberType {
				c.Set(ContextMemberType, memberType)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient permissions"})
		c.Abort()
	}
}

// UserID returns the authenticated user id from the request context.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
