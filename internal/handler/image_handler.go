package handler

import (
	"io"
	"net/http"
	"strings"

	"inventory-service/internal/storage"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var imageStore storage.ObjectStorage

// SetImageStorage wires the object storage backend used by the image handlers
func SetImageStorage(s storage.ObjectStorage) {
	imageStore = s
}

// UploadInventoryImage stores an item photo under the inventory folder
func UploadInventoryImage(c echo.Context) error {
	return uploadImage(c, "inventory")
}

// UploadProfileImage stores a user photo under the profiles folder
func UploadProfileImage(c echo.Context) error {
	return uploadImage(c, "profiles")
}

func uploadImage(c echo.Context, folder string) error {
	log := logger.FromContext(c)
	prometheus.RecordImageOperation("upload")

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing file in upload request", zap.Error(err))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "File is required"})
	}

	if file.Size == 0 {
		log.Warn("Empty file uploaded", zap.String("filename", file.Filename))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "File is empty"})
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		log.Warn("Non-image upload rejected",
			zap.String("filename", file.Filename),
			zap.String("content_type", contentType))
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "File must be an image"})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read file"})
	}

	url, err := imageStore.UploadImage(c.Request().Context(), data, contentType, file.Filename, folder)
	if err != nil {
		log.Error("Image upload failed",
			zap.String("filename", file.Filename),
			zap.String("folder", folder),
			zap.Error(err))
		prometheus.RecordError("storage")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
	}

	log.Info("Image uploaded",
		zap.String("filename", file.Filename),
		zap.String("folder", folder),
		zap.String("url", url))
	return c.JSON(http.StatusOK, echo.Map{
		"url":     url,
		"message": "Image uploaded successfully",
	})
}

// DeleteImage removes a stored image by its public URL
func DeleteImage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordImageOperation("delete")

	url := c.QueryParam("url")
	if url == "" {
		prometheus.RecordError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
	}

	deleted, err := imageStore.DeleteImage(c.Request().Context(), url)
	if err != nil {
		log.Error("Image deletion failed", zap.String("url", url), zap.Error(err))
		prometheus.RecordError("storage")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete image"})
	}
	if !deleted {
		log.Warn("Image not found for deletion", zap.String("url", url))
		prometheus.RecordError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Image not found or already deleted"})
	}

	log.Info("Image deleted", zap.String("url", url))
	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}

// ImageHealthCheck reports whether the storage bucket is reachable
func ImageHealthCheck(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordImageOperation("health")

	if !imageStore.IsBucketAccessible(c.Request().Context()) {
		log.Error("Storage bucket is not accessible")
		prometheus.RecordError("storage")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":  "unhealthy",
			"message": "Storage bucket is not accessible",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"message": "Storage bucket is accessible",
	})
}
