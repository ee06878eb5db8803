package routes

import (
    "context"
    "log"

    "github.com/gin-gonic/gin"

    "excellytics/backend/config"
    "excellytics/backend/controllers"
    "excellytics/backend/database"
    "excellytics/backend/middlewares"
    "excellytics/backend/utils"
)

func Register(r *gin.Engine, cfg config.Config) {
    storage, err := utils.NewCloudinaryStorage(cfg.CloudinaryURL)
    if err != nil {
        log.Fatalf("cloudinary init error: %v", err)
    }

    var fallback utils.TextStreamer
    if cfg.GeminiAPIKey != "" {
        gemini, err := utils.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
        if err != nil {
            log.Printf("gemini init error, fallback disabled: %v", err)
        } else {
            fallback = gemini
        }
    }
    gateway := &utils.Gateway{
        Primary:  utils.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel),
        Fallback: fallback,
    }

    loader := utils.NewSpreadsheetLoader()
    recorder := database.ActivityStore{}

    insight := &controllers.InsightController{
        Files:     database.FileStore{},
        Loader:    loader,
        Gateway:   gateway,
        Cache:     utils.NewInsightCache(cfg.CacheSize, cfg.CacheTTL),
        Recorder:  recorder,
        AITimeout: cfg.AITimeout,
    }
    files := &controllers.FileController{
        Store:    database.FileStore{},
        Storage:  storage,
        Loader:   loader,
        Recorder: recorder,
    }

    api := r.Group("/api")
    {
        auth := api.Group("/auth")
        auth.POST("/register", controllers.Register(cfg))
        auth.POST("/login", controllers.Login(cfg))
        auth.POST("/google", controllers.GoogleLogin(cfg))

        priv := api.Group("/")
        priv.Use(middlewares.Auth(cfg.JWTSecret))
        priv.GET("me", controllers.Me())
        // Spreadsheet storage and chart data
        priv.POST("files/upload", files.Upload())
        priv.GET("files", files.List())
        priv.GET("files/:id/data", files.Data())
        priv.DELETE("files/:id", files.Delete())
        // Audit trail
        priv.GET("activities", controllers.ListActivities())
        // AI endpoints, rate limited per user
        ai := priv.Group("/")
        ai.Use(middlewares.AIRateLimit(cfg.AIRateRPM))
        ai.POST("ai-insights/:fileId", insight.Generate())
        ai.POST("chat/:fileId", insight.Chat())

        admin := priv.Group("/admin")
        admin.Use(middlewares.AdminOnly())
        admin.GET("/users", controllers.AdminListUsers())
        admin.PUT("/users/:id/role", controllers.AdminSetRole())
        admin.DELETE("/users/:id", controllers.AdminDeleteUser())
        admin.GET("/stats", controllers.AdminStats())
    }
}
