// Package ident valida el formato de identificadores ANTES de tocar el store.
// Es un chequeo de forma (UUID), no de existencia.
package ident

import "github.com/google/uuid"

// IsValid valida el string EXACTO que se va a consultar: sin trims ni
// normalización, para que nada con formato inválido llegue al store.
func IsValid(id string) bool {
	// uuid.Validate acepta las variantes estándar (canonical, urn, braces);
	// nos quedamos solo con la canónica de 36 chars, que es la que generamos.
	if len(id) != 36 {
		return false
	}
	return uuid.Validate(id) == nil
}
