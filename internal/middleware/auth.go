package middleware

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/services"
	"github.com/familychef/familychef/internal/utils"
)

// AuthMiddleware validates the JWT bearer token, resolves the user and
// their family memberships, and attaches the authorization context to
// the request. Everything downstream receives scoping explicitly
// through that context, never through global state.
func AuthMiddleware(jwtSecretKey []byte, users services.UserService, families services.FamilyService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorizationHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authorizationHeader, "Bearer ")

			// Parse and validate the token
			claims := &models.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return jwtSecretKey, nil
			})

			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := users.GetUserIDByUsername(claims.Username)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			familyIDs, err := families.FamilyIDsForUser(userID)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac := auth.Context{
				UserID:    userID,
				Username:  claims.Username,
				FamilyIDs: familyIDs,
			}
			next.ServeHTTP(w, r.WithContext(utils.SetAuthContext(r.Context(), ac)))
		})
	}
}
