package usecase

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	multipartFormData = "multipart/form-data"
	octetStream       = "application/octet-stream"

	msgNoImage        = "No image file uploaded"
	msgTooManyImages  = "Only one image can be uploaded for product"
	msgInvalidFormat  = "Invalid image format. Only JPEG, PNG, and WebP are allowed."
	msgInvalidPayload = "Invalid multipart body"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type uploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// multipartBoundary returns the boundary of a multipart/form-data content type.
func multipartBoundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != multipartFormData || params["boundary"] == "" {
		return "", newError(KindTransport, err,
			"Expected content-type was '%s' but found '%s'", multipartFormData, contentType)
	}
	return params["boundary"], nil
}

// readSingleImage walks the multipart body and returns its only file part.
// Non-file fields are skipped. A second file part stops the walk with an
// error, so at most one image ever reaches the object store.
func readSingleImage(body io.Reader, boundary string, maxBytes int64) (*uploadedImage, error) {
	reader := multipart.NewReader(body, boundary)

	var image *uploadedImage
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(KindTransport, err, msgInvalidPayload)
		}

		if part.FileName() == "" {
			part.Close()
			continue
		}
		if image != nil {
			part.Close()
			return nil, newError(KindTransport, nil, msgTooManyImages)
		}

		image, err = readImagePart(part, maxBytes)
		part.Close()
		if err != nil {
			return nil, err
		}
	}

	if image == nil {
		return nil, newError(KindValidation, nil, msgNoImage)
	}
	return image, nil
}

func readImagePart(part *multipart.Part, maxBytes int64) (*uploadedImage, error) {
	declared := baseMediaType(part.Header.Get("Content-Type"))
	if declared != "" && declared != octetStream && !allowedImageTypes[declared] {
		return nil, newError(KindTransport, nil, msgInvalidFormat)
	}

	data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
	if err != nil {
		return nil, newError(KindTransport, err, msgInvalidPayload)
	}
	if int64(len(data)) > maxBytes {
		return nil, newError(KindTransport, nil, "Image exceeds %d bytes", maxBytes)
	}

	contentType := declared
	if contentType == "" || contentType == octetStream {
		contentType = baseMediaType(mimetype.Detect(data).String())
	}
	if !allowedImageTypes[contentType] {
		return nil, newError(KindTransport, nil, msgInvalidFormat)
	}

	return &uploadedImage{
		Filename:    part.FileName(),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func baseMediaType(value string) string {
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}
