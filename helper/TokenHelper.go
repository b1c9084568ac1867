package helper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// TokenService signs and verifies session tokens. The secret comes from
// process configuration and is fixed for the lifetime of the service.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying the subject's identifier. Tokens
// expire after the configured TTL; there is no refresh mechanism.
func (s *TokenService) Issue(userID primitive.ObjectID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the subject's
// identifier.
func (s *TokenService) Verify(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return primitive.NilObjectID, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return primitive.NilObjectID, ErrTokenExpired
		default:
			return primitive.NilObjectID, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrTokenInvalid
	}
	idHex, ok := claims["id"].(string)
	if !ok {
		return primitive.NilObjectID, ErrTokenInvalid
	}
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, ErrTokenInvalid
	}
	return userID, nil
}
