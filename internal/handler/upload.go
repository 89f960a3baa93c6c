package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/placehub/placehub/internal/blob"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger files spill to temp storage.
const maxUploadMemory = 4 << 20 // 4 MB

// errImageRequired indicates the multipart form carried no image part.
var errImageRequired = errors.New("image file is required")

// storeImage reads the "image" part of a multipart request and uploads it
// to the blob store under the given key prefix. Returns the blob key.
func storeImage(r *http.Request, blobs blob.Store, prefix string) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errImageRequired
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, ulid.Make().String(), imageExtension(header))

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := blobs.Put(r.Context(), key, file, contentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return key, nil
}

// imageExtension derives a file extension from the upload's filename.
func imageExtension(header *multipart.FileHeader) string {
	ext := strings.ToLower(path.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
