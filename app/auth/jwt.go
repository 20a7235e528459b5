package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialgraph/app/models"
)

// Claims are the JWT claims carried by issued tokens.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTIssuer issues stateless HS256 tokens.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTIssuer creates a new JWTIssuer signing with secret
func NewJWTIssuer(secret, issuer string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs a token for user that expires after the issuer TTL
func (i *JWTIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Resolve verifies the token and returns its subject user ID
func (i *JWTIssuer) Resolve(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, ErrUnauthenticated
	}
	return claims.UserID, nil
}

// Revoke only checks the token. JWTs stay valid until they expire.
func (i *JWTIssuer) Revoke(token string) error {
	_, err := i.Resolve(token)
	return err
}
