package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mahaj/chat-relay/pkg/auth"
)

type LoginRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// LoginHandler is the token issuance boundary. Credential verification
// against the user database belongs to the account service; this handler
// only mints connection tokens.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == 0 || req.Username == "" {
		http.Error(w, "user_id and username are required", http.StatusBadRequest)
		return
	}

	token, err := auth.GenerateToken(req.UserID, req.Username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// AuthMiddleware validates the bearer token and stores the claims in the
// request context for downstream handlers.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
			tokenString = tokenString[7:]
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), auth.UserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
