package controllers

import (
    "context"
    "errors"
    "io"
    "log"
    "net/http"
    "path/filepath"
    "strconv"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"

    "excellytics/backend/database"
    "excellytics/backend/models"
    "excellytics/backend/utils"
)

const maxUploadBytes = 10 << 20

// Storage is the object store holding raw spreadsheet bytes.
type Storage interface {
    Upload(ctx context.Context, content []byte, publicID string) (url, remoteID string, err error)
    Destroy(ctx context.Context, remoteID string) error
}

type FileController struct {
    Store    database.FileStore
    Storage  Storage
    Loader   SheetLoader
    Recorder ActivityRecorder
}

// Upload accepts a multipart spreadsheet, validates it parses, pushes the
// bytes to object storage and registers the file for the caller.
func (fc *FileController) Upload() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        file, header, err := c.Request.FormFile("file")
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "missing file (field 'file')"})
            return
        }
        defer file.Close()

        ext := strings.ToLower(filepath.Ext(header.Filename))
        if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type; use .xlsx, .xls or .csv"})
            return
        }
        if header.Size > maxUploadBytes {
            c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (10MB max)"})
            return
        }
        buf, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
            return
        }

        // Reject files the insight pipeline would choke on later.
        rows, err := utils.ParseRows(buf, ext)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse spreadsheet"})
            return
        }
        rowCount := len(rows)
        if rowCount > 0 {
            rowCount-- // header row
        }

        ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
        defer cancel()
        url, remoteID, err := fc.Storage.Upload(ctx, buf, uuid.NewString()+ext)
        if err != nil {
            log.Printf("storage upload error: %v", err)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "storage upload failed"})
            return
        }

        f := models.File{
            UserID:       uid,
            OriginalName: header.Filename,
            RemoteURL:    url,
            RemoteID:     remoteID,
            SizeBytes:    header.Size,
            RowCount:     rowCount,
        }
        if err := fc.Store.Insert(ctx, &f); err != nil {
            log.Printf("file insert error: %v", err)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        fc.record(uid, models.ActivityUpload, "Uploaded "+f.OriginalName, &f.ID)
        c.JSON(http.StatusOK, f)
    }
}

func (fc *FileController) List() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
        defer cancel()
        list, err := fc.Store.ListForUser(ctx, uid)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, list)
    }
}

// Data returns the parsed sheet for chart rendering on the frontend.
func (fc *FileController) Data() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
            return
        }
        ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
        defer cancel()
        file, err := fc.Store.FindForUser(ctx, fileID, uid)
        if err != nil {
            if errors.Is(err, utils.ErrNotFound) {
                c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
                return
            }
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        ds, err := fc.Loader.Load(ctx, file.RemoteURL)
        if err != nil {
            log.Printf("file data: load file %d: %v", file.ID, err)
            c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read spreadsheet data"})
            return
        }
        c.JSON(http.StatusOK, gin.H{
            "columns":    ds.Columns,
            "rows":       ds.Rows,
            "total_rows": len(ds.Rows),
        })
    }
}

func (fc *FileController) Delete() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
            return
        }
        ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
        defer cancel()
        file, err := fc.Store.FindForUser(ctx, fileID, uid)
        if err != nil {
            if errors.Is(err, utils.ErrNotFound) {
                c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
                return
            }
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        // Remote asset removal is best-effort; the DB row is authoritative.
        if err := fc.Storage.Destroy(ctx, file.RemoteID); err != nil {
            log.Printf("storage destroy error for %s: %v", file.RemoteID, err)
        }
        ok, err := fc.Store.Delete(ctx, fileID, uid)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        if !ok {
            c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
            return
        }
        fc.record(uid, models.ActivityDelete, "Deleted "+file.OriginalName, nil)
        c.JSON(http.StatusOK, gin.H{"status": "deleted"})
    }
}

func (fc *FileController) record(userID int64, activityType, description string, fileID *int64) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := fc.Recorder.Record(ctx, userID, activityType, description, fileID); err != nil {
            log.Printf("activity record error: %v", err)
        }
    }()
}
