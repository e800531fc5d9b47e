package utils

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ==================== OBJECT KEY ====================

// ProductImageKey builds product-<id>/<random>-<filename>.
func ProductImageKey(productID uuid.UUID, filename string) string {
	return fmt.Sprintf("product-%s/%s-%s", productID, uuid.New(), cleanFilename(filename))
}

func cleanFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	if filename == "." || filename == "/" || filename == "" {
		return "image"
	}
	return filename
}
