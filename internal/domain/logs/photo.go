package logs

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPhotoBytes es el tamaño máximo aceptado para una foto adjunta (5 MiB).
const MaxPhotoBytes = 5 << 20

var ErrInvalidPhoto = errors.New("invalid photo")

// PhotoMeta es la metadata declarada por el cliente al adjuntar una foto.
// La validación corre ANTES de cualquier escritura: un adjunto inválido
// rechaza el registro completo con 400, nunca se persiste a medias.
type PhotoMeta struct {
	URL         string
	ContentType string
	SizeBytes   int64
}

// ValidatePhoto aplica la regla de subida local: tipo imagen y ≤5MB.
// Metadata vacía (sin foto) es válida.
func ValidatePhoto(m PhotoMeta) error {
	if strings.TrimSpace(m.URL) == "" {
		return nil
	}
	if m.ContentType != "" && !strings.HasPrefix(strings.ToLower(m.ContentType), "image/") {
		return fmt.Errorf("%w: content type must be image/*", ErrInvalidPhoto)
	}
	if m.SizeBytes > MaxPhotoBytes {
		return fmt.Errorf("%w: photo exceeds 5MB", ErrInvalidPhoto)
	}
	return nil
}
