package safety

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_AcceptsInsertions(t *testing.T) {
	original := "@Injectable()\nclass Foo {}\n"
	rewritten := "//LOCK\n/**\n * Decorator Usage:\n */\n//UNLOCK\n@Injectable()\nclass Foo {}\n"

	assert.NoError(t, Verify("foo.ts", original, rewritten))
}

func TestVerify_AcceptsIdentical(t *testing.T) {
	assert.NoError(t, Verify("foo.ts", "a\nb\n", "a\nb\n"))
	assert.NoError(t, Verify("foo.ts", "", ""))
}

func TestVerify_AcceptsFrequentLines(t *testing.T) {
	// Identical lines must not be matched out of order.
	var original, rewritten string
	for i := 0; i < 150; i++ {
		original += "}\n"
		rewritten += "}\n"
		if i%10 == 0 {
			rewritten += "// inserted\n"
		}
	}

	assert.NoError(t, Verify("big.ts", original, rewritten))
}

func TestVerify_RejectsDeletion(t *testing.T) {
	original := "line one\nline two\nline three\n"
	rewritten := "line one\nline three\n"

	err := Verify("foo.ts", original, rewritten)
	require.Error(t, err)

	var destructive *DestructiveEditError
	require.True(t, errors.As(err, &destructive))
	assert.Equal(t, "foo.ts", destructive.Path)
	assert.Equal(t, 2, destructive.Line)
	assert.Equal(t, "line two", destructive.Text)
	assert.Equal(t, `foo.ts:2: rewrite removes line "line two"`, err.Error())
}

func TestVerify_RejectsReplacement(t *testing.T) {
	err := Verify("foo.ts", "a\nb\nc\n", "a\nB\nc\n")

	var destructive *DestructiveEditError
	require.True(t, errors.As(err, &destructive))
	assert.Equal(t, 2, destructive.Line)
	assert.Equal(t, "b", destructive.Text)
}

func TestVerify_RejectsEmptiedFile(t *testing.T) {
	err := Verify("foo.ts", "only line\n", "")

	var destructive *DestructiveEditError
	require.True(t, errors.As(err, &destructive))
	assert.Equal(t, 1, destructive.Line)
}

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("const v%d = %d;", i, i)
	}
	return lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestVerify_RejectsEachDeletedLine(t *testing.T) {
	lines := numberedLines(40)
	original := joinLines(lines)

	for i := range lines {
		kept := append(append([]string{}, lines[:i]...), lines[i+1:]...)

		err := Verify("big.ts", original, joinLines(kept))

		var destructive *DestructiveEditError
		require.True(t, errors.As(err, &destructive), "deleting line %d", i+1)
		assert.Equal(t, i+1, destructive.Line)
		assert.Equal(t, lines[i], destructive.Text)
	}
}

func TestVerify_AcceptsBlockAtEachPosition(t *testing.T) {
	lines := numberedLines(40)
	original := joinLines(lines)
	block := []string{"//LOCK", "/**", " * Decorator Usage:", " */", "//UNLOCK"}

	for i := 0; i <= len(lines); i++ {
		rewritten := append(append(append([]string{}, lines[:i]...), block...), lines[i:]...)

		assert.NoError(t, Verify("big.ts", original, joinLines(rewritten)), "block at %d", i)
	}
}

func TestVerify_RandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 2000; iter++ {
		// Lines repeat: 15 distinct values over up to 40 lines.
		original := make([]string, 10+rng.Intn(31))
		for i := range original {
			original[i] = fmt.Sprintf("l%d", rng.Intn(15))
		}

		inserted := insertRandom(rng, original)
		require.NoError(t, Verify("r.ts", joinLines(original), joinLines(inserted)),
			"insertions only: %q -> %q", original, inserted)

		drop := rng.Intn(len(original))
		shorter := append(append([]string{}, original[:drop]...), original[drop+1:]...)
		damaged := insertRandom(rng, shorter)

		var destructive *DestructiveEditError
		require.True(t, errors.As(Verify("r.ts", joinLines(original), joinLines(damaged)), &destructive),
			"line %d dropped: %q -> %q", drop+1, original, damaged)
	}
}

// insertRandom returns lines with new lines, absent from the original
// alphabet, inserted at random positions.
func insertRandom(rng *rand.Rand, lines []string) []string {
	var out []string
	for i, line := range lines {
		for n := rng.Intn(3); n > 0; n-- {
			out = append(out, fmt.Sprintf("new%d", rng.Intn(20)))
		}
		out = append(out, line)
		if i == len(lines)-1 && rng.Intn(2) == 0 {
			out = append(out, "new-tail")
		}
	}
	return out
}
