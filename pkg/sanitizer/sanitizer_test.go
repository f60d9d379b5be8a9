package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentstudio/studio/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Jane@X.com ":       "jane@x.com",
		"jane..doe@x.com":     "jane.doe@x.com",
		".jane.@x.com":        "jane@x.com",
		"not-an-email":        "not-an-email",
		"a@b@c.com":           "a@b@c.com",
		"":                    "",
		"JANE.DOE@EXAMPLE.IO": "jane.doe@example.io",
	}

	for in, want := range tests {
		assert.Equal(t, want, sanitizer.NormalizeEmail(in), "input %q", in)
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"jane@x.com":  "j***@x.com",
		"j@x.com":     "*@x.com",
		"élise@x.com": "é****@x.com",
		"invalid":     "invalid",
		"@x.com":      "@x.com",
	}

	for in, want := range tests {
		assert.Equal(t, want, sanitizer.MaskEmail(in), "input %q", in)
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims and collapses", in: "  Jane \t  Doe \n", want: "Jane Doe"},
		{name: "composes accents", in: "Jose\u0301", want: "Jos\u00e9"},
		{name: "drops control chars", in: "Jane\x00\x07 Doe", want: "Jane Doe"},
		{name: "strips tags", in: "<b>Jane</b> Doe", want: "Jane Doe"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeName(tt.in))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.Trim, strings.ToUpper)
	assert.Equal(t, "ABC", clean("  abc "))
	assert.Equal(t, "x", sanitizer.Apply("x"))
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.TruncateRunes("héllo", 4))
	assert.Equal(t, "héllo", sanitizer.TruncateRunes("héllo", 10))
	assert.Equal(t, "", sanitizer.TruncateRunes("héllo", 0))
}
