package upload

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/services/spaces"
	"github.com/deptweb/site-api/utils/response"
)

// MaxUploadSize caps a single uploaded file at 20 MB.
const MaxUploadSize = 20 * 1024 * 1024

// PresignTTL bounds temporary download links.
const PresignTTL = 15 * time.Minute

// UploadHandler handles file uploads to object storage
type UploadHandler struct {
	spacesClient *spaces.Client
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(spacesClient *spaces.Client) *UploadHandler {
	return &UploadHandler{spacesClient: spacesClient}
}

// UploadResponse carries the stored location of an uploaded file
type UploadResponse struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// Upload handles POST /api/v1/admin/uploads. The multipart field is
// named "file"; an optional "folder" field prefixes the storage key.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.spacesClient == nil {
		return response.InternalServerError(c, "File storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	if fileHeader.Size > MaxUploadSize {
		return response.BadRequest(c, "File exceeds the maximum size of 20 MB")
	}

	if !spaces.IsAllowedExtension(fileHeader.Filename) {
		return response.BadRequest(c, "File type is not allowed")
	}

	folder := c.FormValue("folder", "uploads")

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[UPLOAD] open failed: %v", err)
		return response.InternalServerError(c, "")
	}
	defer file.Close()

	key := spaces.GenerateKey(folder, fileHeader.Filename)
	contentType := spaces.GetContentType(fileHeader.Filename)

	url, err := h.spacesClient.UploadFile(c.Context(), key, file, contentType)
	if err != nil {
		log.Printf("[UPLOAD] upload %q failed: %v", key, err)
		return response.InternalServerError(c, "Failed to store file")
	}

	return response.Created(c, UploadResponse{
		URL:      url,
		Key:      key,
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
	})
}

// PresignResponse carries a time-limited download URL
type PresignResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"` // in seconds
}

// Presign handles GET /api/v1/admin/uploads/presign/*. It returns a
// temporary download URL for a stored key, for files that are not
// served through the public CDN.
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	if h.spacesClient == nil {
		return response.InternalServerError(c, "File storage is not configured")
	}

	key := c.Params("*")
	if key == "" {
		return response.BadRequest(c, "File key is required")
	}

	url, err := h.spacesClient.GetPresignedURL(key, PresignTTL)
	if err != nil {
		log.Printf("[UPLOAD] presign %q failed: %v", key, err)
		return response.InternalServerError(c, "Failed to create download link")
	}

	return response.Success(c, PresignResponse{
		URL:       url,
		Key:       key,
		ExpiresIn: int(PresignTTL.Seconds()),
	})
}

// Delete handles DELETE /api/v1/admin/uploads/:key (key URL-encoded,
// wildcard route).
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if h.spacesClient == nil {
		return response.InternalServerError(c, "File storage is not configured")
	}

	key := c.Params("*")
	if key == "" {
		return response.BadRequest(c, "File key is required")
	}

	if err := h.spacesClient.DeleteFile(c.Context(), key); err != nil {
		log.Printf("[UPLOAD] delete %q failed: %v", key, err)
		return response.InternalServerError(c, "Failed to delete file")
	}

	return response.SuccessWithMessage(c, "File deleted successfully")
}
