package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ShareTokenService emite y valida los tokens con los que el cuidador
// accede al historial de lecturas de un paciente. Reemplaza al viejo login
// de resultados de la aplicacion de escritorio, que quedo fuera de alcance.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  ShareTokenStore
}

type ShareClaims struct {
	PatientID string `json:"pid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenExpired = errors.New("share token expired")
	ErrShareTokenRevoked = errors.New("share token revoked")
)

func NewShareTokenService(secret string, ttl time.Duration) *ShareTokenService {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &ShareTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "heart-monitor",
		store:  NewMemoryShareTokenStore(),
	}
}

func NewShareTokenServiceWithStore(secret string, ttl time.Duration, store ShareTokenStore) *ShareTokenService {
	svc := NewShareTokenService(secret, ttl)
	if store != nil {
		svc.store = store
	}
	return svc
}

// Generate emite un token de acceso al historial del paciente dado.
func (s *ShareTokenService) Generate(patientID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrShareTokenInvalid
	}
	if strings.TrimSpace(patientID) == "" {
		return "", ErrShareTokenInvalid
	}
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := ShareClaims{
		PatientID: patientID,
		TokenType: "share",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   patientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	if s.store != nil {
		if err := s.store.Store(jti, patientID, s.ttl); err != nil {
			return "", err
		}
	}
	return signed, nil
}

// Parse valida un token compartido y devuelve sus claims.
func (s *ShareTokenService) Parse(tokenString string) (ShareClaims, error) {
	if len(s.secret) == 0 {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return ShareClaims{}, err
	}
	if claims.TokenType != "share" {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	if claims.ID == "" || s.store == nil {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	ok, err := s.store.Exists(claims.ID)
	if err != nil {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	if !ok {
		return ShareClaims{}, ErrShareTokenRevoked
	}
	return claims, nil
}

// Revoke invalida un token compartido antes de su vencimiento.
func (s *ShareTokenService) Revoke(tokenString string) error {
	if len(s.secret) == 0 {
		return ErrShareTokenInvalid
	}
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	if claims.TokenType != "share" || claims.ID == "" {
		return ErrShareTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return ErrShareTokenInvalid
	}
	if s.store == nil {
		return ErrShareTokenInvalid
	}
	return s.store.Revoke(claims.ID)
}

func (s *ShareTokenService) parseToken(tokenString string) (ShareClaims, error) {
	var claims ShareClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ShareClaims{}, ErrShareTokenExpired
		}
		return ShareClaims{}, ErrShareTokenInvalid
	}
	return claims, nil
}

func (s *ShareTokenService) isValidClaims(claims ShareClaims) bool {
	if strings.TrimSpace(claims.PatientID) == "" {
		return false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if claims.Subject != claims.PatientID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
