package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RolePlayer    Role = "player"
)

// OrganizerSubject is the fixed subject of organizer tokens; the organizer login is a shared code.
const OrganizerSubject = "organizer"

// Claims extends jwt.RegisteredClaims with session fields.
type Claims struct {
	jwt.RegisteredClaims
	Role     Role   `json:"role"`
	GameCode string `json:"game_code,omitempty"`
}

type Manager struct {
	signingKey   []byte
	issuer       string
	organizerTTL time.Duration
	playerTTL    time.Duration
}

func NewManager(signingKey string, issuer string, organizerTTL, playerTTL time.Duration) *Manager {
	return &Manager{
		signingKey:   []byte(signingKey),
		issuer:       issuer,
		organizerTTL: organizerTTL,
		playerTTL:    playerTTL,
	}
}

// GenerateOrganizerToken creates a signed organizer session token.
// The returned claims carry the JTI the caller needs for revocation.
func (m *Manager) GenerateOrganizerToken() (string, *Claims, error) {
	return m.sign(OrganizerSubject, RoleOrganizer, "", m.organizerTTL)
}

// GeneratePlayerToken creates a signed player session token bound to one registration of one game.
func (m *Manager) GeneratePlayerToken(registrationID uuid.UUID, gameCode string) (string, *Claims, error) {
	return m.sign(registrationID.String(), RolePlayer, gameCode, m.playerTTL)
}

func (m *Manager) sign(subject string, role Role, gameCode string, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		Role:     role,
		GameCode: gameCode,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

// Validate parses and validates a token string, returning claims.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Issuer != m.issuer {
		return nil, errors.New("invalid issuer")
	}

	switch claims.Role {
	case RoleOrganizer, RolePlayer:
	default:
		return nil, errors.New("invalid role")
	}

	return claims, nil
}
