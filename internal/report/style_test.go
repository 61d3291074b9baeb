package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
)

func TestNewStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		colors bool
		glyphs bool
		want   Style
	}{
		{
			name:   "everything on",
			colors: true,
			glyphs: true,
			want: Style{
				SuccessColor: "\x1b[32m",
				ErrorColor:   "\x1b[31m",
				Reset:        "\x1b[0m",
				SuccessGlyph: "✔ ",
				ErrorGlyph:   "✖ ",
			},
		},
		{
			name:   "colors only",
			colors: true,
			want:   Style{SuccessColor: "\x1b[32m", ErrorColor: "\x1b[31m", Reset: "\x1b[0m"},
		},
		{
			name:   "glyphs only",
			glyphs: true,
			want:   Style{SuccessGlyph: "✔ ", ErrorGlyph: "✖ "},
		},
		{
			name: "plain",
			want: PlainStyle(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewStyle(tt.colors, tt.glyphs))
		})
	}
}

func TestStyle_Label(t *testing.T) {
	t.Parallel()

	style := NewStyle(true, true)
	assert.Equal(t, "\x1b[32m✔ Foo\x1b[0m", style.Label(deploystatus.Success, "Foo"))
	assert.Equal(t, "\x1b[31m✖ Baz\x1b[0m", style.Label(deploystatus.Failure, "Baz"))
	assert.Equal(t, "Foo", PlainStyle().Label(deploystatus.Success, "Foo"))
}
