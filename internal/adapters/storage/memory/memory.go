// Package memory implementa los repositorios sobre mapas en memoria.
// Es el storage por defecto cuando no hay DATABASE_URL (dev y tests).
package memory

import "errors"

var (
	errIDRequired    = errors.New("id required")
	errAlreadyExists = errors.New("already exists")
)
