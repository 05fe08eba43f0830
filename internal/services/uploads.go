package services

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotAnImage = errors.New("file must be an image")

// UploadService stores license images on local disk and hands back the
// relative path the API serves them under.
type UploadService struct {
	Dir string
}

func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadService{Dir: dir}, nil
}

// SaveLicenseImage writes the uploaded file under a fresh random name,
// keeping only the original extension. Returns the public /uploads path.
func (s *UploadService) SaveLicenseImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	ext := filepath.Ext(file.Filename)
	filename := primitive.NewObjectID().Hex() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(s.Dir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
