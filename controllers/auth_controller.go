package controllers

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "google.golang.org/api/idtoken"

    "excellytics/backend/config"
    "excellytics/backend/database"
    "excellytics/backend/models"
    "excellytics/backend/utils"
)

func hash(pw string) string {
    h := sha256.Sum256([]byte(pw))
    return hex.EncodeToString(h[:])
}

func Register(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.RegisterRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
            return
        }
        if req.Password == "" || req.Password != req.Confirm {
            c.JSON(http.StatusBadRequest, gin.H{"error": "password mismatch"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var id int64
        err := database.Pool.QueryRow(ctx,
            `INSERT INTO users(name,email,password_hash) VALUES($1,$2,$3) RETURNING id`,
            req.Name, strings.ToLower(req.Email), hash(req.Password)).Scan(&id)
        if err != nil {
            c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
            return
        }
        token, _ := utils.GenerateJWT(cfg.JWTSecret, id, "user", 24*time.Hour)
        c.JSON(http.StatusOK, gin.H{"token": token})
    }
}

func Login(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.LoginRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var id int64
        var pw, role string
        err := database.Pool.QueryRow(ctx,
            `SELECT id, COALESCE(password_hash,''), role FROM users WHERE email=$1`,
            strings.ToLower(req.Email)).Scan(&id, &pw, &role)
        if err != nil || pw == "" || pw != hash(req.Password) {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
            return
        }
        _, _ = database.Pool.Exec(ctx, `UPDATE users SET last_login_at=now() WHERE id=$1`, id)
        token, _ := utils.GenerateJWT(cfg.JWTSecret, id, role, 24*time.Hour)
        c.JSON(http.StatusOK, gin.H{"token": token})
    }
}

// GoogleLogin verifies a Google ID token from the frontend sign-in flow and
// upserts the matching user.
func GoogleLogin(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.GoogleLoginRequest
        if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Credential) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "missing credential"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        payload, err := idtoken.Validate(ctx, req.Credential, cfg.GoogleClientID)
        if err != nil {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid google credential"})
            return
        }
        email, _ := payload.Claims["email"].(string)
        name, _ := payload.Claims["name"].(string)
        if email == "" {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "google account has no email"})
            return
        }
        if name == "" {
            name = email
        }
        var id int64
        var role string
        err = database.Pool.QueryRow(ctx,
            `INSERT INTO users(name,email,google_id,last_login_at) VALUES($1,$2,$3,now())
             ON CONFLICT (email) DO UPDATE SET google_id=EXCLUDED.google_id, last_login_at=now()
             RETURNING id, role`,
            name, strings.ToLower(email), payload.Subject).Scan(&id, &role)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        token, _ := utils.GenerateJWT(cfg.JWTSecret, id, role, 24*time.Hour)
        c.JSON(http.StatusOK, gin.H{"token": token})
    }
}
