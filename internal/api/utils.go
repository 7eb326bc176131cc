package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(v)
}

type apiError struct {
	Error string `json:"error"`
}

// UserInfo is the account a request was authenticated as
type UserInfo struct {
	UserID   int
	Username string
}

// Claims is the JWT payload issued at login
type Claims struct {
	UserID   int    `json:"userID"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

const tokenLifetime = 7 * 24 * time.Hour

// createJWT generates a new JWT for a given user
func createJWT(userID int, username, secret string, now time.Time) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *APIServer) validateJWT(tokenString string) (*UserInfo, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Username == "" {
		return nil, fmt.Errorf("token is missing user claims")
	}
	return &UserInfo{UserID: claims.UserID, Username: claims.Username}, nil
}

func requireAuth(s *APIServer, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "authorization header required"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid authorization format"})
			return
		}

		userInfo, err := s.validateJWT(tokenString)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: "invalid token"})
			return
		}

		next(w, r.WithContext(SetUserInContext(r.Context(), userInfo)))
	}
}

type contextKey string

const userContextKey contextKey = "user"

func SetUserInContext(ctx context.Context, user *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func GetUserFromContext(ctx context.Context) (*UserInfo, bool) {
	user, ok := ctx.Value(userContextKey).(*UserInfo)
	return user, ok
}
