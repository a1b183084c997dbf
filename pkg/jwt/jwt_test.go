package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, now time.Time) *pkgjwt.Service {
	t.Helper()
	svc, err := pkgjwt.NewService(pkgjwt.Config{Secret: testSecret, Issuer: "staybook-test"})
	require.NoError(t, err)
	return svc.WithClock(func() time.Time { return now })
}

func TestNewService_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewService(pkgjwt.Config{})
	assert.Error(t, err)
}

func TestNewService_TTLPorDefectoUnaHora(t *testing.T) {
	svc, err := pkgjwt.NewService(pkgjwt.Config{Secret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}

func TestIssueAndVerify_ConRole(t *testing.T) {
	svc := newService(t, t0)
	tok, err := svc.Issue(testUserID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "staybook-test", claims.Issuer)
	assert.True(t, t0.Add(time.Hour).Equal(claims.ExpiresAt.Time), "expira una hora después de emitirse")
	assert.True(t, t0.Equal(claims.IssuedAt.Time))
}

// verify(issue(id, role)) tiene éxito si y solo si now < expiry.
func TestVerify_VigenciaHastaExpiracion(t *testing.T) {
	tok, err := newService(t, t0).Issue(testUserID, "user")
	require.NoError(t, err)

	cases := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"inmediatamente", t0, true},
		{"a los 59 minutos", t0.Add(59 * time.Minute), true},
		{"un segundo antes", t0.Add(time.Hour - time.Second), true},
		{"en la expiración exacta", t0.Add(time.Hour), false},
		{"después de expirar", t0.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newService(t, tc.at).Verify(tok)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
			}
		})
	}
}

func TestVerify_SecretIncorrecto(t *testing.T) {
	tok, err := newService(t, t0).Issue(testUserID, "user")
	require.NoError(t, err)

	other, err := pkgjwt.NewService(pkgjwt.Config{Secret: "otro-secret-completamente-distinto"})
	require.NoError(t, err)
	_, err = other.WithClock(func() time.Time { return t0 }).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerify_TokenMalformado(t *testing.T) {
	svc := newService(t, t0)
	for _, tok := range []string{"", "token.invalido.aqui", "abc"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_MetodoNone_Rechazado(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   testUserID,
			ExpiresAt: gojwt.NewNumericDate(t0.Add(time.Hour)),
		},
		UserID: testUserID,
		Role:   "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(t, t0).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerify_SinExpiracion_Rechazado(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: testUserID},
		UserID:           testUserID,
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newService(t, t0).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssue_CamposObligatorios(t *testing.T) {
	svc := newService(t, t0)
	_, err := svc.Issue("", "admin")
	assert.Error(t, err)
	_, err = svc.Issue(testUserID, "")
	assert.Error(t, err)
}
