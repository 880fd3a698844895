package controller

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldForSearch normaliza un texto para búsqueda local: minúsculas y sin
// diacríticos, de modo que "almacen" encuentre "Almacén". El transformer se
// construye por llamada porque las cadenas de transform no son seguras para
// uso concurrente.
func foldForSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// matchesSearch reporta si algún campo contiene el término (substring,
// insensible a mayúsculas y acentos). Un término vacío siempre coincide.
func matchesSearch(term string, fields []string) bool {
	if term == "" {
		return true
	}
	needle := foldForSearch(term)
	for _, f := range fields {
		if strings.Contains(foldForSearch(f), needle) {
			return true
		}
	}
	return false
}
