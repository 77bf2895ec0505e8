package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticate extracts the opaque user id from the identity provider's
// bearer token and puts it in the gin context. It NEVER aborts: request
// tanpa sesi valid tetap diteruskan dengan user_id kosong, dan gateway yang
// menolaknya — supaya traffic anonim tidak pernah menyentuh rate limiter.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		// Token hanya membawa identitas. Organisasi dan role TIDAK diambil
		// dari claims: keduanya di-resolve ulang dari database tiap request
		// karena keanggotaan bisa berubah setelah token diterbitkan.
		sub, err := claims.GetSubject()
		if err == nil && sub != "" {
			c.Set("user_id", sub)
		}

		c.Next()
	}
}
