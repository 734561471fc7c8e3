// internal/app/features/ratings/templates.go
package ratings

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "ratings",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
