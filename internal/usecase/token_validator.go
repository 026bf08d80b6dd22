package usecase

import (
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid token")

// TokenValidator resolves the acting party from a bearer token.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (uuid.UUID, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidToken)
	}
	if claims.PartyID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return claims.PartyID, nil
}
