package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	"github.com/sistema-manobrista/valet-api/internal/authz"
	"github.com/sistema-manobrista/valet-api/internal/config"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/httpresp"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

// Sessões expiram em 8 horas a partir da emissão.
const tokenLifetime = 8 * time.Hour

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[!@#$%^&*]`)
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"nome_usuario"`
	Password string `json:"senha"`
	Role     string `json:"cargo"`
}

type LoginRequest struct {
	Username string `json:"nome_usuario"`
	Password string `json:"senha"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		httperr.BadRequest(c, "missing_fields", "Todos os campos são obrigatórios.")
		return
	}

	if len(req.Username) < 3 || len(req.Username) > 30 {
		httperr.BadRequest(c, "invalid_username", "Nome de usuário deve ter entre 3 e 30 caracteres.")
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		httperr.BadRequest(c, "invalid_username",
			"Nome de usuário contém caracteres inválidos. Use apenas letras, números, _ ou .")
		return
	}

	if !authz.IsKnownRole(req.Role) {
		httperr.BadRequest(c, "invalid_role",
			"Cargo inválido. Cargos permitidos: manobrista, orientador, admin.")
		return
	}

	if !isPasswordStrong(req.Password) {
		httperr.BadRequest(c, "weak_password",
			"A senha não atende aos requisitos de segurança (mín. 6, máx. 60 caracteres, maiúscula, minúscula, número, especial).")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("nome_usuario = ?", req.Username).
		Count(&count).Error; err != nil {

		httperr.Internal(c, "failed_to_create_user", "Erro interno do servidor.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "username_taken", "Nome de usuário já existe.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno do servidor.")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       models.UserStatusActive,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// corrida entre a contagem e o insert: o índice único decide
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "username_taken", "Nome de usuário já existe.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Erro interno do servidor.")
		return
	}

	adminID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_registered",
		Entity:   "usuario",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Usuário registrado com sucesso!"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Username == "" || req.Password == "" {
		httperr.BadRequest(c, "missing_fields", "Nome de usuário e senha são obrigatórios.")
		return
	}

	var user models.User
	if err := h.db.Where("nome_usuario = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno do servidor ao fazer login.")
		return
	}

	if user.Status == models.UserStatusInactive {
		httperr.Forbidden(c, "user_inactive", "Este usuário está desativado. Contate o administrador.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno do servidor ao fazer login.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login bem-sucedido!",
		"token":   token,
		"user": gin.H{
			"id":           user.ID,
			"nome_usuario": user.Username,
			"cargo":        user.Role,
		},
	})
}

func (h *AuthHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		status = models.UserStatusActive
	}

	var users []models.User
	if err := h.db.
		Select("id", "nome_usuario", "cargo", "status").
		Where("status = ?", status).
		Order("nome_usuario ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_users", "Erro interno do servidor.")
		return
	}

	httpresp.OK(c, users)
}

func (h *AuthHandler) Deactivate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	// Um admin não pode se trancar para fora do sistema.
	if uint(id) == adminID {
		httperr.BadRequest(c, "self_deactivation", "Você não pode desativar a si mesmo.")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("status", models.UserStatusInactive)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_deactivate", "Erro interno do servidor.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	target := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_deactivated",
		Entity:   "usuario",
		EntityID: &target,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Usuário desativado com sucesso."})
}

func (h *AuthHandler) Reactivate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("status", models.UserStatusActive)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_reactivate", "Erro interno do servidor.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	target := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_reactivated",
		Entity:   "usuario",
		EntityID: &target,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Usuário reativado com sucesso."})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"cargo": user.Role,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func isPasswordStrong(password string) bool {
	if len(password) < 6 || len(password) > 60 {
		return false
	}
	return hasUpper.MatchString(password) &&
		hasLower.MatchString(password) &&
		hasDigit.MatchString(password) &&
		hasSpecial.MatchString(password)
}
