package models

import "github.com/golang-jwt/jwt/v4"

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"` // Firebase UID
	jwt.RegisteredClaims
}

// FirebaseLoginRequest carries a Firebase ID token to exchange for a local
// session JWT.
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}
