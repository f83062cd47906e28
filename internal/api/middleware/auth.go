package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY  contextKey = "auth_type"
	CALLER_KEY     contextKey = "caller"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

// ON_BEHALF_OF_HEADER names the caller address a trusted API key acts for
const ON_BEHALF_OF_HEADER = "X-On-Behalf-Of"

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
	// APIKeyAccounts limits a key to the listed on-behalf-of addresses.
	// A key without an entry may act for any account, including the administrator.
	APIKeyAccounts map[string][]string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success  bool
	AuthType string // "jwt" or "apikey"
	Claims   *jwt.RegisteredClaims
	// Caller is the authenticated account; empty for an API key without an on-behalf-of address
	Caller domain.Address
	Error  error
}

// Authenticate validates the Authorization header and resolves the calling account.
// A JWT's subject is the caller; an API key acts for the address in onBehalfOf.
func Authenticate(authHeader string, onBehalfOf string, cfg AuthConfig) AuthResult {
	// Create a map for faster API key lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	// Parse the authorization header
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	authType := strings.ToLower(parts[0])
	credentials := parts[1]

	switch authType {
	case "bearer":
		// JWT authentication
		claims, err := validateJWT(credentials, cfg.JWTPublicKey)
		if err != nil {
			result.Error = err
			return result
		}
		caller, err := domain.ParseAddress(claims.Subject)
		if err != nil {
			result.Error = fmt.Errorf("token subject is not an account address: %w", err)
			return result
		}
		result.Success = true
		result.AuthType = AuthTypeJWT
		result.Claims = claims
		result.Caller = caller

	case "apikey":
		// API Key authentication
		err := validateAPIKey(credentials, apiKeyMap)
		if err != nil {
			result.Error = err
			return result
		}
		if onBehalfOf != "" {
			caller, err := domain.ParseAddress(onBehalfOf)
			if err != nil {
				result.Error = fmt.Errorf("invalid %s header: %w", ON_BEHALF_OF_HEADER, err)
				return result
			}
			if !apiKeyMayActFor(credentials, caller, cfg.APIKeyAccounts) {
				result.Error = fmt.Errorf("API key may not act on behalf of %s", caller)
				return result
			}
			result.Caller = caller
		}
		result.Success = true
		result.AuthType = AuthTypeAPIKey

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
		return result
	}

	return result
}

// apiKeyMayActFor reports whether key is scoped to include caller; unscoped keys may act for anyone
func apiKeyMayActFor(key string, caller domain.Address, scopes map[string][]string) bool {
	accounts, scoped := scopes[key]
	if !scoped {
		return true
	}
	for _, account := range accounts {
		allowed, err := domain.ParseAddress(account)
		if err == nil && allowed == caller {
			return true
		}
	}
	return false
}

// Auth returns a gin middleware that requires an authenticated caller account.
// It supports both JWT (Bearer token) and API Key with an on-behalf-of address.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c.GetHeader("Authorization"), c.GetHeader(ON_BEHALF_OF_HEADER), cfg)
		if result.Success && result.Caller == "" {
			result.Success = false
			result.Error = fmt.Errorf("%s header is required with API key authentication", ON_BEHALF_OF_HEADER)
		}

		if !result.Success {
			abortUnauthorized(c, result.Error)
			return
		}

		// Store authentication info in context
		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Set(CALLER_KEY, result.Caller)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}
		logger.Debug("Authentication successful",
			zap.String("auth_type", result.AuthType),
			zap.String("caller", result.Caller.String()),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)

		c.Next()
	}
}

// APIKeyAuth returns a gin middleware that only accepts API key authentication.
// It guards operator endpoints that do not act for an account.
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c.GetHeader("Authorization"), "", cfg)
		if result.Success && result.AuthType != AuthTypeAPIKey {
			result.Success = false
			result.Error = errors.New("API key authentication is required")
		}

		if !result.Success {
			abortUnauthorized(c, result.Error)
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Next()
	}
}

// CallerFromContext returns the authenticated caller set by Auth
func CallerFromContext(c *gin.Context) (domain.Address, bool) {
	v, ok := c.Get(CALLER_KEY)
	if !ok {
		return "", false
	}
	caller, ok := v.(domain.Address)
	return caller, ok && caller != ""
}

func abortUnauthorized(c *gin.Context, err error) {
	logger.Warn("Authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	)
	apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
}

// validateJWT validates a JWT token with RSA signature and returns claims
func validateJWT(tokenString string, publicKeyPEM string) (*jwt.RegisteredClaims, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	// Parse the RSA public key
	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	// Parse and validate the token with claims
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is RSA
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Validate standard claims
	now := time.Now()

	// Check expiration
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}

	// Check not before
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}

// validateAPIKey validates an API key
func validateAPIKey(apiKey string, validKeys map[string]bool) error {
	if len(validKeys) == 0 {
		return errors.New("no API keys configured")
	}

	if !validKeys[apiKey] {
		return errors.New("invalid API key")
	}

	return nil
}
