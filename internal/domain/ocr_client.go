package domain

import "context"

// OCRClient extracts text from an image supplied either as an HTTP-fetchable
// URL or as a base64-encoded payload. An empty string with a nil error means
// the image was readable but contained no text.
type OCRClient interface {
	ExtractText(ctx context.Context, image string) (string, error)
}
