// utils/files.go - Uploaded file handling
package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Per-purpose subdirectories under the upload root.
const (
	FolderPhotos     = "photos"
	FolderSignatures = "signatures"
	FolderNIDImages  = "nid_images"
	FolderDocuments  = "documents"
	FolderPDFs       = "pdfs"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadRoot returns the configured base directory for uploaded files.
func UploadRoot() string {
	if root := os.Getenv("UPLOAD_PATH"); root != "" {
		return root
	}
	return "./uploads"
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips path components and unsafe characters.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(base, "")
}

// SaveUploadedFile writes the file under the given purpose folder with a
// timestamp prefix to avoid name collisions, and returns the path relative
// to the upload root. Files with a disallowed extension are skipped and
// reported as an empty path, matching the intake contract where optional
// attachments never fail a submission.
func SaveUploadedFile(c *gin.Context, file *multipart.FileHeader, folder string) (string, error) {
	if file == nil || !AllowedFile(file.Filename) {
		return "", nil
	}

	filename := time.Now().Format("20060102_150405_") + SanitizeFilename(file.Filename)

	dir := filepath.Join(UploadRoot(), folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return filepath.Join(folder, filename), nil
}
