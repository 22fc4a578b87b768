package zona

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepara un nombre geográfico para búsqueda: quita tildes, recorta,
// colapsa espacios internos y pasa a mayúsculas. "  san   José " -> "SAN JOSE".
func Normalize(s string) string {
	// transform.Chain guarda estado: se crea uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(out), " "))
}
