package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/XJIeI5/calcengine/internal/session"
	"github.com/dgrijalva/jwt-go"
)

var (
	errNoAuthorization = errors.New(`no header "Authorization"`)
	errInvalidToken    = errors.New("invalid session token")
)

const sessionClaim = "sid"

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	token, err := s.issueToken(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}{ID: id, Token: token})
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) issueToken(id string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		sessionClaim: id,
		"nbf":        now.Unix(),
		"exp":        now.Add(s.auth.TokenTTL).Unix(),
		"iat":        now.Unix(),
	})
	return token.SignedString([]byte(s.auth.SigningKey))
}

func (s *server) validateToken(bearerToken string) (string, error) {
	tokenString := strings.TrimPrefix(bearerToken, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.auth.SigningKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	id, ok := claims[sessionClaim].(string)
	if !ok || id == "" {
		return "", errInvalidToken
	}
	return id, nil
}

// authorize resolves the session id from the Authorization header, writing a
// 401 when it cannot.
func (s *server) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	bearerToken := r.Header.Get("Authorization")
	if bearerToken == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errNoAuthorization.Error()})
		return "", false
	}
	id, err := s.validateToken(bearerToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return "", false
	}
	return id, true
}

func (s *server) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	s.log.WithError(err).Error("session lookup failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
