package imageControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
)

// UploadImage stores a multipart image under the configured upload directory
// and returns its public URL. Filenames are uuid-prefixed to avoid clashes.
func UploadImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}

		filename := uuid.NewString() + "_" + strings.ReplaceAll(file.Filename, " ", "_")

		if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
			return
		}
		savePath := filepath.Join(cfg.UploadDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + filename})
	}
}
