package flag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/flagkit/pkg/flag"
)

func TestNewContextClonesAttributes(t *testing.T) {
	t.Parallel()

	attrs := map[string]any{"country": "US"}
	ctx := flag.NewContext("u1", attrs)

	attrs["country"] = "FR"
	assert.Equal(t, "US", ctx.Attributes["country"], "the context must not alias the caller's map")
}

func TestContextWithAttribute(t *testing.T) {
	t.Parallel()

	base := flag.NewContext("u1", map[string]any{"country": "US"})
	derived := base.WithAttribute("plan", "pro")

	assert.Equal(t, "u1", derived.UserKey)
	assert.Equal(t, "pro", derived.Attributes["plan"])
	assert.Equal(t, "US", derived.Attributes["country"])
	assert.NotContains(t, base.Attributes, "plan", "the receiver stays untouched")
}
