package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/pkg/locale"
)

// LocalLang clave del idioma resuelto en c.Locals.
const LocalLang = "lang"

// LocaleMiddleware resuelve el idioma del header Accept-Language contra los
// soportados y lo deja en Locals y en Content-Language.
func LocaleMiddleware(resolver *locale.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := resolver.Resolve(c.Get("Accept-Language"))
		c.Locals(LocalLang, lang)
		c.Set("Content-Language", lang)
		return c.Next()
	}
}

// GetLang devuelve el idioma resuelto de la request.
func GetLang(c *fiber.Ctx) string {
	v := c.Locals(LocalLang)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
