package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar JWT más la identidad del usuario dentro de su kiosco.
// La emisión la hace el servicio de identidad; esta API solo valida.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	KioscoID string `json:"kiosco_id"`
	Role     string `json:"role"` // "admin" | "encargado" | "vendedor"
}

// Generate firma un token con userID, kioscoID y role. Lo usan los tests y las herramientas de desarrollo.
func Generate(secret, userID, kioscoID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		KioscoID: kioscoID,
		Role:     role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, kioscoID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae kiosco.
func Parse(secret, tokenString string) (userID, kioscoID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	if claims.KioscoID == "" {
		return "", "", "", fmt.Errorf("jwt: kiosco_id ausente")
	}
	return claims.UserID, claims.KioscoID, claims.Role, nil
}
