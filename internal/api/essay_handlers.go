package api

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/essay"
	"scholar-ai/internal/intent"
)

// saveUpload writes an uploaded part to a temp file and returns its path.
// Callers own the cleanup.
func saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	dst := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("%w: failed to store uploaded file: %v", apperr.ErrState, err)
	}
	return dst, nil
}

// POST /api/essay/:userId
// Accepts a JSON body {"prompt": ...} or a multipart form with optional
// "prompt" field, "audio" part and "file" part. The fused input is intent
// gated; non-essay requests get a chat reply instead of an essay. When a
// previous essay exists for the user the request is treated as an
// incremental refinement, otherwise a full generation runs.
func EssayHandler(fuser InputFuser, engine EssayGenerator, memory *essay.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		ctx := c.Request.Context()

		var (
			promptText string
			audioPath  string
			docPath    string
			docName    string
		)

		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			promptText = c.PostForm("prompt")

			if fh, err := c.FormFile("audio"); err == nil {
				p, err := saveUpload(c, fh)
				if err != nil {
					abortWithError(c, err)
					return
				}
				defer os.Remove(p)
				audioPath = p
			}
			if fh, err := c.FormFile("file"); err == nil {
				p, err := saveUpload(c, fh)
				if err != nil {
					abortWithError(c, err)
					return
				}
				defer os.Remove(p)
				docPath = p
				docName = fh.Filename
			}
		} else {
			var req struct {
				Prompt string `json:"prompt"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			promptText = req.Prompt
		}

		fused, err := fuser.Fuse(ctx, promptText, audioPath, docPath, docName)
		if err != nil {
			abortWithError(c, err)
			return
		}

		it := intent.Detect(fused.Text)
		if it != intent.Essay {
			c.JSON(http.StatusOK, gin.H{
				"intent":  it,
				"message": "Hi! Tell me about the scholarship essay you want to write.",
			})
			return
		}

		existing, found := memory.Get(userID)
		var result string
		if found {
			result = existing
			newText := joinNonEmpty(fused.Prompt, fused.Voice)
			if newText != "" {
				result, err = engine.Update(ctx, result, newText)
				if err != nil {
					abortWithError(c, err)
					return
				}
			}
			if fused.Document != "" {
				result, err = engine.UpdateFromDocument(ctx, result, fused.Document)
				if err != nil {
					abortWithError(c, err)
					return
				}
			}
			log.Printf("[API] refined essay for user %s", userID)
		} else {
			result, err = engine.Generate(ctx, fused.Text, userID)
			if err != nil {
				abortWithError(c, err)
				return
			}
			log.Printf("[API] generated essay for user %s", userID)
		}

		memory.Set(userID, result)
		c.JSON(http.StatusOK, gin.H{
			"intent": it,
			"essay":  result,
		})
	}
}

// POST /api/essay/:userId/clear
func ClearEssayHandler(memory *essay.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		memory.Clear(userID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// POST /api/compare
func CompareHandler(engine EssayGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			EssayA string `json:"essayA"`
			EssayB string `json:"essayB"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.EssayA) == "" || strings.TrimSpace(req.EssayB) == "" {
			abortWithError(c, fmt.Errorf("%w: both essayA and essayB are required", apperr.ErrValidation))
			return
		}

		result, err := engine.Compare(c.Request.Context(), req.EssayA, req.EssayB)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
