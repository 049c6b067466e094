package handler

import (
	"strings"

	"campuseventhub-backend/errs"
	"campuseventhub-backend/jwt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const claimsKey = "claims"

// RequireAuth resolves the bearer credential to claims and stores them
// in the request context. Handlers trust this resolution.
func RequireAuth(key []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token := strings.TrimPrefix(h, "Bearer ")
		if token == "" {
			abortError(c, errs.ErrUnauthorized)
			return
		}

		claims, err := jwt.ValidateAccessToken(token, key)
		if err != nil {
			if err == jwt.ErrExpired {
				abortError(c, errs.ErrTokenExpired)
				return
			}

			abortError(c, errs.ErrUnauthorized)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func RequireAdmin(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil || !claims.IsAdmin() {
		abortError(c, errs.ErrNotAdmin)
		return
	}

	c.Next()
}

func claimsFrom(c *gin.Context) *jwt.AccessClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}

	claims, _ := v.(*jwt.AccessClaims)
	return claims
}

func callerID(c *gin.Context) (primitive.ObjectID, error) {
	claims := claimsFrom(c)
	if claims == nil {
		return primitive.NilObjectID, errs.ErrUnauthorized
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errs.ErrJWT
	}

	return id, nil
}
