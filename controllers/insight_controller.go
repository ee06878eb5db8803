package controllers

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/gin-gonic/gin"

    "excellytics/backend/models"
    "excellytics/backend/utils"
)

// Dependencies of the AI endpoints, narrowed so tests can stub them.
type FileFinder interface {
    FindForUser(ctx context.Context, fileID, userID int64) (*models.File, error)
}

type SheetLoader interface {
    Load(ctx context.Context, url string) (utils.Dataset, error)
}

type Generator interface {
    GenerateInsights(ctx context.Context, prompt string) (string, error)
    Chat(ctx context.Context, prompt string) (string, error)
}

type ActivityRecorder interface {
    Record(ctx context.Context, userID int64, activityType, description string, fileID *int64) error
}

// Sample sizes embedded in prompts differ between the two endpoints.
const (
    insightSampleRows = 2
    chatSampleRows    = 3
)

// InsightController serves the AI insight and chat endpoints: verify
// ownership, fetch and summarize the sheet, generate, record the activity.
// The chat path additionally memoizes answers per (user, file, question).
type InsightController struct {
    Files     FileFinder
    Loader    SheetLoader
    Gateway   Generator
    Cache     *utils.InsightCache
    Recorder  ActivityRecorder
    AITimeout time.Duration
}

func (ic *InsightController) timeout() time.Duration {
    if ic.AITimeout <= 0 {
        return time.Minute
    }
    return ic.AITimeout
}

// Generate handles POST /api/ai-insights/:fileId. Always regenerates; on a
// primary rate limit the gateway transparently streams from the fallback.
func (ic *InsightController) Generate() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
            return
        }
        ctx, cancel := context.WithTimeout(c.Request.Context(), ic.timeout())
        defer cancel()

        file, err := ic.Files.FindForUser(ctx, fileID, uid)
        if err != nil {
            ic.respondLookupError(c, err)
            return
        }
        ds, err := ic.Loader.Load(ctx, file.RemoteURL)
        if err != nil {
            log.Printf("insights: load file %d: %v", file.ID, err)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insights", "details": "could not read spreadsheet data"})
            return
        }
        prompt := utils.BuildInsightPrompt(utils.SummarizeDataset(ds, insightSampleRows))
        text, err := ic.Gateway.GenerateInsights(ctx, prompt)
        if err != nil {
            ic.respondGenerationError(c, "failed to generate insights", err)
            return
        }
        ic.record(uid, models.ActivityAIAnalysis, "Generated AI insights for "+file.OriginalName, &file.ID)
        c.JSON(http.StatusOK, gin.H{"insights": text})
    }
}

// Chat handles POST /api/chat/:fileId. A cache hit answers immediately and
// skips generation and activity recording entirely.
func (ic *InsightController) Chat() gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.ChatRequest
        if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
            return
        }
        uid := c.GetInt64("user_id")
        fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
            return
        }
        ctx, cancel := context.WithTimeout(c.Request.Context(), ic.timeout())
        defer cancel()

        file, err := ic.Files.FindForUser(ctx, fileID, uid)
        if err != nil {
            ic.respondLookupError(c, err)
            return
        }
        if answer, ok := ic.Cache.Get(uid, file.ID, req.Message); ok {
            c.JSON(http.StatusOK, gin.H{"response": answer})
            return
        }
        ds, err := ic.Loader.Load(ctx, file.RemoteURL)
        if err != nil {
            log.Printf("chat: load file %d: %v", file.ID, err)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "chat request failed", "details": "could not read spreadsheet data"})
            return
        }
        prompt := utils.BuildChatPrompt(utils.SummarizeDataset(ds, chatSampleRows), req.Message)
        reply, err := ic.Gateway.Chat(ctx, prompt)
        if err != nil {
            ic.respondGenerationError(c, "chat request failed", err)
            return
        }
        ic.Cache.Set(uid, file.ID, req.Message, reply)
        ic.record(uid, models.ActivityChat, "Asked about "+file.OriginalName+": "+truncate(req.Message, 120), &file.ID)
        c.JSON(http.StatusOK, gin.H{"response": reply})
    }
}

func (ic *InsightController) respondLookupError(c *gin.Context, err error) {
    if errors.Is(err, utils.ErrNotFound) {
        c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
        return
    }
    log.Printf("file lookup error: %v", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": "unexpected failure"})
}

func (ic *InsightController) respondGenerationError(c *gin.Context, msg string, err error) {
    if errors.Is(err, utils.ErrEmptyGeneration) {
        c.JSON(http.StatusBadGateway, gin.H{"error": msg, "details": "AI provider returned an empty response"})
        return
    }
    log.Printf("ai generation error: %v", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": "unexpected failure"})
}

// record never blocks or fails the response; failures are only logged.
func (ic *InsightController) record(userID int64, activityType, description string, fileID *int64) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := ic.Recorder.Record(ctx, userID, activityType, description, fileID); err != nil {
            log.Printf("activity record error: %v", err)
        }
    }()
}

func truncate(s string, n int) string {
    if len(s) <= n {
        return s
    }
    return s[:n]
}
