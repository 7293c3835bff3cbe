package markdown

import (
	"testing"

	"github.com/arthur-debert/sdkpack/pkg/rules"
	"github.com/stretchr/testify/assert"
)

func TestGlamourRenderer(t *testing.T) {
	doc := rules.Default().Markdown()

	t.Run("notty keeps the content", func(t *testing.T) {
		r := &GlamourRenderer{Style: "notty", Width: 80}
		out := r.Render(doc)

		assert.Contains(t, out, "Exclusion rules")
		assert.Contains(t, out, "scons-out")
		assert.Contains(t, out, "DEPS")
	})

	t.Run("auto style", func(t *testing.T) {
		out := NewGlamourRenderer().Render(doc)
		assert.Contains(t, out, "packages")
	})

	t.Run("bad style path falls back to input", func(t *testing.T) {
		r := &GlamourRenderer{Style: "/does/not/exist.json"}
		assert.Equal(t, doc, r.Render(doc))
	})
}
