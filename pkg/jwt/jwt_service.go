package jwt

import (
	"Pasikuthu/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	purposeSession   = "session"
	purposeMagicLink = "magic_link"
)

type (
	JWTService interface {
		GenerateSessionToken(userID string, email string, duration time.Duration) (string, time.Time, error)
		ValidateSessionToken(token string) (*SessionClaims, error)
		GenerateMagicLinkToken(email string, duration time.Duration) (string, error)
		ValidateMagicLinkToken(token string) (string, error)
	}

	SessionClaims struct {
		UserID  string `json:"user_id"`
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "PASIKUTHU",
	}
}

func (j *jwtService) sign(claims SessionClaims, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(duration)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validate(token string, purpose string) (*SessionClaims, error) {
	t_Token, err := jwt.ParseWithClaims(token, &SessionClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := t_Token.Claims.(*SessionClaims)
	if !ok || !t_Token.Valid || claims.Purpose != purpose || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) GenerateSessionToken(userID string, email string, duration time.Duration) (string, time.Time, error) {
	return j.sign(SessionClaims{UserID: userID, Email: email, Purpose: purposeSession}, duration)
}

func (j *jwtService) ValidateSessionToken(token string) (*SessionClaims, error) {
	return j.validate(token, purposeSession)
}

func (j *jwtService) GenerateMagicLinkToken(email string, duration time.Duration) (string, error) {
	token, _, err := j.sign(SessionClaims{Email: email, Purpose: purposeMagicLink}, duration)
	return token, err
}

// ValidateMagicLinkToken returns the email the link was issued for.
func (j *jwtService) ValidateMagicLinkToken(token string) (string, error) {
	claims, err := j.validate(token, purposeMagicLink)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}
