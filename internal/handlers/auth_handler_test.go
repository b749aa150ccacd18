package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/config"
	"github.com/sistema-manobrista/valet-api/internal/handlers"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/testutil"
)

func loginRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}
	h := handlers.NewAuthHandler(db, cfg, testutil.NewAuditDispatcher(db))

	admin := testutil.SeedUser(t, db, "admin1", "admin")

	r := gin.New()
	r.POST("/api/auth/login", h.Login)

	r.POST("/api/auth/register", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, admin.ID)
		c.Set(middleware.ContextUserRole, "admin")
	}, h.Register)

	return r, db
}

func seedCredential(t *testing.T, db *gorm.DB, username, password, status string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         "manobrista",
		Status:       status,
	}
	require.NoError(t, db.Create(&user).Error)
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, db := loginRouter(t)
	seedCredential(t, db, "joao", "Senha@123", models.UserStatusActive)
	seedCredential(t, db, "maria", "Senha@123", models.UserStatusInactive)

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", gin.H{
			"nome_usuario": "joao",
			"senha":        "Senha@123",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"nome_usuario"`
				Role     string `json:"cargo"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "joao", resp.User.Username)
		assert.Equal(t, "manobrista", resp.User.Role)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", gin.H{
			"nome_usuario": "joao",
			"senha":        "Errada@123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown username is 401", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", gin.H{
			"nome_usuario": "ninguem",
			"senha":        "Senha@123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	// Usuário desativado recebe 403 mesmo com a senha certa, para que o
	// front diferencie "credencial errada" de "conta bloqueada".
	t.Run("inactive user is 403 even with correct password", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", gin.H{
			"nome_usuario": "maria",
			"senha":        "Senha@123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", gin.H{"nome_usuario": "joao"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := loginRouter(t)

	body := gin.H{
		"nome_usuario": "pedro",
		"senha":        "Senha@123",
		"cargo":        "manobrista",
	}

	w := postJSON(r, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}
