package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Interpolation(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("Hello {{ name }}", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)
}

func TestRenderer_NestedLookup(t *testing.T) {
	r := NewRenderer()

	params := map[string]any{
		"user": map[string]any{"name": "Ada", "city": "Lausanne"},
	}
	out, err := r.Render("{{ user.name }} from {{ user.city }}", params)
	require.NoError(t, err)
	assert.Equal(t, "Ada from Lausanne", out)
}

func TestRenderer_Conditional(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("{% if member %}welcome back{% else %}hello{% endif %}",
		map[string]any{"member": true})
	require.NoError(t, err)
	assert.Equal(t, "welcome back", out)

	out, err = r.Render("{% if member %}welcome back{% else %}hello{% endif %}",
		map[string]any{"member": false})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRenderer_Iteration(t *testing.T) {
	r := NewRenderer()

	params := map[string]any{"items": []any{"a", "b", "c"}}
	out, err := r.Render("{% for item in items %}{{ item }}{% endfor %}", params)
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
}

func TestRenderer_Filter(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("{{ name | upcase }}", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ADA", out)
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer()
	src := "{% for i in items %}{{ i }},{% endfor %}{{ user.name | downcase }}"
	params := map[string]any{
		"items": []any{"x", "y"},
		"user":  map[string]any{"name": "ADA"},
	}

	first, err := r.Render(src, params)
	require.NoError(t, err)
	second, err := r.Render(src, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderer_CompileError(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("{% endif %}", map[string]any{})
	assert.Error(t, err)
}

func TestRenderer_RenderError(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("{{ name | no_such_filter }}", map[string]any{"name": "Ada"})
	assert.Error(t, err)
}
