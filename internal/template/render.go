// internal/template/render.go
package template

import (
	"fmt"
	"log"

	"github.com/osteele/liquid"
)

// Renderer evaluates Liquid template source against a caller-supplied
// parameter tree. The engine carries the standard Liquid tag and filter
// set; parameters arrive as the map[string]any tree produced by JSON
// decoding, which liquid consumes directly.
type Renderer struct {
	engine *liquid.Engine
}

func NewRenderer() *Renderer {
	return &Renderer{engine: liquid.NewEngine()}
}

// Render compiles src and evaluates it against params. Compile and
// evaluate failures are logged distinctly; both are fatal to the request.
func (r *Renderer) Render(src string, params map[string]any) (string, error) {
	tpl, err := r.engine.ParseString(src)
	if err != nil {
		log.Printf("❌ [TEMPLATE] Compile failed: %v", err)
		return "", fmt.Errorf("compile template: %w", err)
	}

	out, err := tpl.RenderString(params)
	if err != nil {
		log.Printf("❌ [TEMPLATE] Evaluate failed: %v", err)
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}
