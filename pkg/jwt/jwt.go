package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El servicio de Auth emite el token; aquí solo se verifica la firma y se extraen
// user_id, company_id y el flag de dueño (es_dueno en el sistema original).
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
	IsOwner   bool  `json:"is_owner"`
}

// Identity es el resultado de verificar un token: la identidad del llamante
// durante una petición. No se persiste.
type Identity struct {
	UserID    int64
	CompanyID int64
	IsOwner   bool
}

// Generate genera un token JWT firmado con userID, companyID y el flag de dueño.
// En producción lo hace el servicio de Auth; se mantiene aquí para tests y tooling local.
func Generate(secret string, userID, companyID int64, isOwner bool, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		IsOwner:   isOwner,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad del llamante.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
// La pertenencia a empresa sale únicamente de los claims verificados, nunca de otra fuente.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == 0 || claims.CompanyID == 0 {
		return nil, fmt.Errorf("claims incompletos: user_id y company_id son obligatorios")
	}
	return &Identity{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		IsOwner:   claims.IsOwner,
	}, nil
}
