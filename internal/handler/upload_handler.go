package handler

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/pkg/response"
	"github.com/studentbay/backend/pkg/storage"
)

const (
	maxImageSize      = 5 << 20 // 5MB per file
	maxImagesPerBatch = 5
)

var allowedImageExts = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type UploadHandler struct {
	storage storage.ImageStorage
}

func NewUploadHandler(store storage.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// UploadSingle accepts one file under the "image" field.
func (h *UploadHandler) UploadSingle(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "no image file provided")
		return
	}

	uploaded, err := h.store(c, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	if uploaded == nil {
		return
	}

	response.OK(c, "image uploaded", uploaded)
}

// UploadMultiple accepts up to five files under the "images" field.
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.Fail(c, http.StatusBadRequest, "no image files provided")
		return
	}
	if len(files) > maxImagesPerBatch {
		response.Fail(c, http.StatusBadRequest, "at most 5 images are allowed per upload")
		return
	}

	uploaded := make([]dto.UploadedFile, 0, len(files))
	for _, file := range files {
		result, err := h.store(c, file)
		if err != nil {
			response.Error(c, err)
			return
		}
		if result == nil {
			return
		}
		uploaded = append(uploaded, *result)
	}

	response.OK(c, "images uploaded", uploaded)
}

// store validates and persists one file. A nil result with a nil error
// means the rejection response was already written.
func (h *UploadHandler) store(c *gin.Context, file *multipart.FileHeader) (*dto.UploadedFile, error) {
	if msg := checkImageFile(file); msg != "" {
		response.Fail(c, http.StatusBadRequest, msg)
		return nil, nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name := imageFileName(file.Filename)
	url, err := h.storage.UploadImage(c.Request.Context(), src, name)
	if err != nil {
		return nil, err
	}

	return &dto.UploadedFile{URL: url, Filename: name, Size: file.Size}, nil
}

// checkImageFile returns an empty string when the file is acceptable,
// otherwise the rejection message. Size and type are reported
// separately so the client can tell the problems apart.
func checkImageFile(file *multipart.FileHeader) string {
	if file.Size > maxImageSize {
		return fmt.Sprintf("file %s exceeds the 5MB size limit", file.Filename)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	expectedMIME, ok := allowedImageExts[ext]
	if !ok {
		return fmt.Sprintf("file %s is not an allowed image type (jpeg, jpg, png, gif, webp)", file.Filename)
	}

	if declared := file.Header.Get("Content-Type"); declared != "" && declared != expectedMIME {
		return fmt.Sprintf("file %s content type does not match its extension", file.Filename)
	}
	return ""
}

func imageFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("item-%d-%09d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), ext)
}
