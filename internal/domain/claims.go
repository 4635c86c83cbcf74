package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	OperatorName string `json:"operator_name"`
	RoleID       int    `json:"role_id"`
	jwt.RegisteredClaims
}
