package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bookingapi/src/models"
	"bookingapi/src/types"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"AED": "د.إ",
	"GBP": "£",
}

// CurrencySymbol falls back to "$" for unset or unknown codes.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return "$"
}

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

func GetPagination(page, limit int) types.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return types.Pagination{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// PageMeta derives page count and neighbours; next/previous are nil at the edges.
func PageMeta(p types.Pagination, total int64) (totalPages int, next *int, previous *int) {
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	if p.Page < totalPages {
		n := p.Page + 1
		next = &n
	}
	if p.Page > 1 {
		prev := p.Page - 1
		previous = &prev
	}
	return totalPages, next, previous
}

func GenerateJWT(secret []byte, ttl time.Duration, user *models.User) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

var ErrInvalidToken = errors.New("invalid token")

func ParseJWT(secret []byte, reqToken string) (*types.Claims, error) {
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
