package validator

import (
	"log"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"

	"glbiashara_backend/internal/media"
)

// registerCustomRules adds the domain rules. Registration failures are
// programming errors, so start-up stops.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'media_kind': image, video or their plural forms
	mustRegister("media_kind", func(fl validator.FieldLevel) bool {
		_, ok := media.ParseKind(fl.Field().String())
		return ok
	})

	// 'public_id': a relative, already-clean storage key
	mustRegister("public_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if id == "" || strings.HasPrefix(id, "/") || strings.Contains(id, `\`) {
			return false
		}
		return path.Clean(id) == id && !strings.HasPrefix(id, "..")
	})
}
