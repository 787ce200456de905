package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gestimo/rentd/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Parser validates HS256 access tokens and extracts the caller principal.
// Expected claims: sub (user id), org_id, role.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(raw string) (model.Principal, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := claimUUID(claims, "sub")
	if err != nil {
		return model.Principal{}, err
	}
	orgID, err := claimUUID(claims, "org_id")
	if err != nil {
		return model.Principal{}, err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return model.Principal{}, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	return model.Principal{UserID: userID, OrgID: orgID, Role: role}, nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing %s claim", ErrInvalidToken, key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s claim", ErrInvalidToken, key)
	}
	return id, nil
}
