package entity

import "github.com/golang-jwt/jwt/v5"

type JWTClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`

	jwt.RegisteredClaims
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserResp `json:"user"`
}

type UserResp struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
