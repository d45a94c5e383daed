package builder

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMathFraction(t *testing.T) {
	assert.Equal(t, `\frac{3}{4}`, normalizeMath("3/4"))
}

func TestNormalizeMathCaretExponent(t *testing.T) {
	assert.Equal(t, `x^{2}`, normalizeMath("x^2"))
}

func TestNormalizeMathUnicodeSqrt(t *testing.T) {
	assert.Equal(t, `\sqrt{16}`, normalizeMath("√16"))
}

func TestNormalizeMathPlainSqrt(t *testing.T) {
	assert.Equal(t, `\sqrt{16}`, normalizeMath("sqrt(16)"))
}

func TestFormatMathRendersPerTarget(t *testing.T) {
	canonical := `\frac{1}{2} + \sqrt{9} + x^{2}`

	t.Run("unicode", func(t *testing.T) {
		out := formatMath(canonical, domain.MathUnicode)
		assert.Contains(t, out, "√(9)")
		assert.Contains(t, out, "(1)/(2)")
		assert.Contains(t, out, "x²")
	})

	t.Run("plain", func(t *testing.T) {
		out := formatMath(canonical, domain.MathPlain)
		assert.Contains(t, out, "sqrt(9)")
		assert.Contains(t, out, "(1)/(2)")
		assert.Contains(t, out, "^2")
	})

	t.Run("latex leaves canonical form untouched", func(t *testing.T) {
		out := formatMath(canonical, domain.MathLatex)
		assert.Equal(t, canonical, out)
	})
}

func TestToSuperscript(t *testing.T) {
	assert.Equal(t, "²³", toSuperscript("23"))
}
