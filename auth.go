package bankx

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const identityKey ctxKey = iota

// Authenticator turns a request into the caller's Identity.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

type identityClaims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies RS256 bearer tokens issued by the authentication
// service and reads the userId and role claims.
type JWTAuthenticator struct {
	key *rsa.PublicKey
}

var (
	_ Authenticator = (*JWTAuthenticator)(nil)
)

func NewJWTAuthenticator(publicKeyPEM []byte) (*JWTAuthenticator, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	return &JWTAuthenticator{key: key}, nil
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	hdr := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(hdr, "Bearer ")
	if !ok || raw == "" {
		return Identity{}, ErrAuthorization{Reason: "missing bearer token"}
	}
	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, ErrAuthorization{Reason: "invalid token"}
	}
	role, err := ParseRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}
	if claims.UserID <= 0 {
		return Identity{}, ErrAuthorization{Reason: "token carries no user id"}
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}

// IdentityFrom returns the identity stored by the authentication middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	who, ok := ctx.Value(identityKey).(Identity)
	return who, ok
}

func withIdentity(ctx context.Context, who Identity) context.Context {
	return context.WithValue(ctx, identityKey, who)
}

func authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, err := auth.Authenticate(r)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), who)))
		})
	}
}

func requireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, ok := IdentityFrom(r.Context())
			if !ok || who.Role != role {
				WriteHTTPError(w, ErrAuthorization{Reason: "requires role " + string(role)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
