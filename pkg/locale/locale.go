package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Resolver resuelve el idioma de respuesta a partir de un header Accept-Language.
// Usa el matcher de golang.org/x/text contra la lista de idiomas soportados y
// cae al idioma por defecto cuando no hay coincidencia.
type Resolver struct {
	matcher   language.Matcher
	supported []string
	def       string
}

// NewResolver construye el resolver. supported no debe estar vacío; el primer
// elemento que coincida con def (o el primero de la lista) actúa como respaldo.
func NewResolver(supported []string, def string) *Resolver {
	if len(supported) == 0 {
		supported = []string{def}
	}
	tags := make([]language.Tag, 0, len(supported))
	ordered := make([]string, 0, len(supported))
	// El matcher trata el primer tag como el idioma por defecto.
	if def != "" {
		tags = append(tags, language.Make(def))
		ordered = append(ordered, strings.ToLower(def))
	}
	for _, s := range supported {
		code := strings.ToLower(s)
		if code == strings.ToLower(def) {
			continue
		}
		tags = append(tags, language.Make(code))
		ordered = append(ordered, code)
	}
	return &Resolver{
		matcher:   language.NewMatcher(tags),
		supported: ordered,
		def:       strings.ToLower(def),
	}
}

// Resolve devuelve el código de idioma soportado para el valor de Accept-Language.
// El código devuelto es el subtag primario en minúsculas ("es-CO;q=0.9" -> "es").
// Entrada vacía o sin coincidencias devuelve el idioma por defecto.
func (r *Resolver) Resolve(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return r.def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.def
	}
	tag, _, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return r.def
	}
	base, _ := tag.Base()
	code := strings.ToLower(base.String())
	for _, s := range r.supported {
		if s == code {
			return code
		}
	}
	return r.def
}
