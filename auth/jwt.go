package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultName is used when a token carries no usable name.
const DefaultName = "Player"

var ErrAuthDisabled = errors.New("AUTH_BASE_URL is not set")

// Validator checks tokens issued by one auth provider.
type Validator struct {
	issuer  string
	keyfunc jwt.Keyfunc
}

// NewValidator fetches the provider's JWKS from baseURL + "/.well-known/jwks.json".
// The issuer is expected to be the scheme and host of baseURL.
func NewValidator(baseURL string) (*Validator, error) {
	if baseURL == "" {
		return nil, ErrAuthDisabled
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	jwks, err := keyfunc.NewDefault([]string{strings.TrimSuffix(baseURL, "/") + "/.well-known/jwks.json"})
	if err != nil {
		return nil, err
	}
	return &Validator{issuer: u.Scheme + "://" + u.Host, keyfunc: jwks.Keyfunc}, nil
}

// Validate parses tokenString and returns its claims.
func (v *Validator) Validate(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, v.keyfunc,
		jwt.WithIssuer(v.issuer),
		jwt.WithValidMethods([]string{"EdDSA"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

var (
	validatorsMu sync.Mutex
	validators   = map[string]*Validator{}
)

// ValidateToken validates a JWT against the JWKS published under baseURL and returns the claims.
// Validators are cached per base URL.
func ValidateToken(baseURL, tokenString string) (jwt.MapClaims, error) {
	validatorsMu.Lock()
	v, ok := validators[baseURL]
	if !ok {
		var err error
		v, err = NewValidator(baseURL)
		if err != nil {
			validatorsMu.Unlock()
			return nil, err
		}
		validators[baseURL] = v
	}
	validatorsMu.Unlock()
	return v.Validate(tokenString)
}

// FirstNameFromClaims returns the first word of the "name" claim, or DefaultName.
func FirstNameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return DefaultName
	}
	return parts[0]
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
