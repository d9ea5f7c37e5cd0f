package helper

import (
	"cinema_scheduler/model"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenIssuer signs and verifies access tokens with a shared HMAC secret.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func (t *TokenIssuer) GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = tokenClaim.AccountId
	claims["username"] = tokenClaim.Username
	claims["role"] = tokenClaim.Role
	claims["exp"] = t.now().Add(t.TTL).Unix()

	return token.SignedString(t.Secret)
}

func (t *TokenIssuer) ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.now))
}

// ClaimFromToken reads the account claims written by GenerateAccessToken.
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, error) {
	if token == nil {
		return model.TokenClaim{}, errors.New("no token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("invalid claims type")
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return model.TokenClaim{}, errors.New("token has no account id")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{AccountId: uint(id), Username: username, Role: role}, nil
}

func PrincipalFromClaim(claim model.TokenClaim) model.Principal {
	principal := model.Principal{UserID: strconv.FormatUint(uint64(claim.AccountId), 10)}
	if claim.Role != "" {
		principal.Roles = []string{claim.Role}
	}
	return principal
}
