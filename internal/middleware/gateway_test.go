package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const gatewaySecret = "test-secret"

func gatewayRouter(secret string) *gin.Engine {
	r := gin.New()
	r.GET("/:email/ping", GatewayAuth(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func signGatewayToken(t *testing.T, secret, email string, expiry time.Duration) string {
	t.Helper()
	claims := GatewayClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doGatewayRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/owner@shop.com/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGatewayAuth(t *testing.T) {
	t.Run("disabled without a secret", func(t *testing.T) {
		r := gatewayRouter("")
		if rec := doGatewayRequest(r, ""); rec.Code != http.StatusOK {
			t.Errorf("expected pass-through, got %d", rec.Code)
		}
	})

	t.Run("accepts a matching token", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		token := signGatewayToken(t, gatewaySecret, "owner@shop.com", time.Hour)
		if rec := doGatewayRequest(r, token); rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		token := signGatewayToken(t, gatewaySecret, "Owner@Shop.com", time.Hour)
		if rec := doGatewayRequest(r, token); rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		if rec := doGatewayRequest(r, ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects a token for another identity", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		token := signGatewayToken(t, gatewaySecret, "other@shop.com", time.Hour)
		if rec := doGatewayRequest(r, token); rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		token := signGatewayToken(t, gatewaySecret, "owner@shop.com", -time.Hour)
		if rec := doGatewayRequest(r, token); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		r := gatewayRouter(gatewaySecret)
		token := signGatewayToken(t, "wrong-secret", "owner@shop.com", time.Hour)
		if rec := doGatewayRequest(r, token); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
