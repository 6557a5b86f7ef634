package avatars

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/avorobyov/taskkeeper/internal/common"
)

// Normalizer validates raw upload bytes before they are handed to a Store.
type Normalizer interface {
	Normalize(data []byte) ([]byte, error)
}

// ImageNormalizer accepts PNG and JPEG payloads up to MaxBytes and rejects
// everything else with a validation error. Oversized uploads are rejected
// before any decoding happens.
type ImageNormalizer struct {
	MaxBytes int64
}

func NewImageNormalizer(maxBytes int64) *ImageNormalizer {
	return &ImageNormalizer{MaxBytes: maxBytes}
}

func (n *ImageNormalizer) Normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty avatar payload", common.ErrorValidation)
	}
	if n.MaxBytes > 0 && int64(len(data)) > n.MaxBytes {
		return nil, fmt.Errorf("%w: avatar exceeds %d bytes", common.ErrorValidation, n.MaxBytes)
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		return nil, fmt.Errorf("%w: unsupported avatar type %s", common.ErrorValidation, contentType)
	}

	// make sure the payload really decodes as an image, not just a header
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: corrupt image data", common.ErrorValidation)
	}

	return data, nil
}
