package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa cualquier fallo de verificación (firma, formato, expiración).
var ErrInvalidToken = errors.New("jwt: token inválido o expirado")

// DefaultTTL duración de un token de sesión.
const DefaultTTL = time.Hour

// Claims incluye los claims estándar JWT más la identidad y el rol de la sesión.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Config se carga una sola vez al arrancar. Cambiar Secret invalida todos los tokens emitidos.
type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Service emite y verifica tokens HS256. Es inmutable y seguro para uso concurrente.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewService construye el servicio de tokens. Secret vacío es un error de configuración.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(cfg.Secret), ttl: ttl, issuer: cfg.Issuer, now: time.Now}, nil
}

// WithClock devuelve una copia del servicio con otro reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// TTL devuelve la vigencia de los tokens emitidos.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue genera un token firmado con identidad, rol, emisión y expiración (now + TTL).
func (s *Service) Issue(userID, role string) (string, error) {
	if userID == "" || role == "" {
		return "", fmt.Errorf("jwt: user_id y role son obligatorios")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, formato y expiración. No hay confianza parcial: cualquier fallo es ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.Subject != claims.UserID || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
