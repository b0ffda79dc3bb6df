package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims include i claims standard JWT più i campi propri dell'applicazione.
// Plan viaggia nel token così il client può abilitare le viste avanzate senza una query extra.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Plan   string `json:"plan"` // "free" | "pro" | "enterprise"
}

// Generate genera un token JWT firmato che include userID e plan.
func Generate(secret, userID, plan, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vuoto")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Plan:   plan,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida il token e restituisce userID e plan.
// Ritorna errore se il token è invalido, scaduto o con firma errata.
func Parse(secret, tokenString string) (userID, plan string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vuoto")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo di firma inatteso: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims invalidi")
	}
	return claims.UserID, claims.Plan, nil
}
