// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media hosts recipe images on an S3-compatible object store.

Recipes keep both the public URL and the object key so a replaced or deleted
image can be removed from the bucket afterwards.
*/
package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/dishdiary/internal/platform/apperr"
)

// Storage uploads and deletes hosted images.
type Storage interface {
	Upload(ctx context.Context, upload Upload) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Upload is an image received from a client. Body must be rewindable: the
// content is sniffed before it is sent, and the S3 client rewinds it to sign
// and retry the request.
type Upload struct {
	Filename string
	Size     int64
	Body     io.ReadSeeker
}

// Object is a hosted image.
type Object struct {
	Key         string
	URL         string
	ContentType string
}

// FieldImage is the multipart field carrying the image.
const FieldImage = "image"

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// sniffLength is the most [http.DetectContentType] looks at.
const sniffLength = 512

// Inspect checks that the upload is a JPEG or PNG by both extension and
// content, and returns the canonical extension and content type. The body
// is rewound to its start afterwards.
func Inspect(upload Upload) (string, string, error) {
	extension := strings.ToLower(path.Ext(upload.Filename))
	expected, ok := allowedExtensions[extension]
	if !ok || upload.Body == nil {
		return "", "", unsupported()
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", "", apperr.Malformed("Image could not be read").WithCause(err)
	}
	if _, err := upload.Body.Seek(0, io.SeekStart); err != nil {
		return "", "", apperr.Malformed("Image could not be read").WithCause(err)
	}
	if http.DetectContentType(head[:n]) != expected {
		return "", "", unsupported()
	}

	if extension == ".jpeg" {
		extension = ".jpg"
	}
	return extension, expected, nil
}

func unsupported() error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldImage,
		Message: "Only jpg, jpeg and png images are allowed",
	})
}

// Disabled is the Storage used when no bucket is configured.
type Disabled struct{}

// Upload always fails with SERVICE_UNAVAILABLE.
func (Disabled) Upload(context.Context, Upload) (*Object, error) {
	return nil, apperr.ServiceUnavailable("Image uploads are not configured")
}

// Delete is a no-op: nothing can have been uploaded.
func (Disabled) Delete(context.Context, string) error { return nil }
