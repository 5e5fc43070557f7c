package boundary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/chunker"
)

const sample = `Hypertension is a common condition in which the long-term force of the blood against the artery walls is high enough that it may eventually cause health problems. Blood pressure is determined both by the amount of blood the heart pumps and the amount of resistance to blood flow in the arteries.

You can have high blood pressure for years without any symptoms. Even without symptoms, damage to blood vessels and the heart continues and can be detected. Uncontrolled high blood pressure increases the risk of serious health problems, including heart attack and stroke.
Most people with high blood pressure have no signs or symptoms, even if blood pressure readings reach dangerously high levels! A few people may have headaches, shortness of breath or nosebleeds? These signs are not specific.`

func newChunker(t *testing.T, size, overlap int) chunker.Chunker {
	t.Helper()
	c, err := NewChunker(chunker.WithChunkSize(size), chunker.WithChunkOverlap(overlap))
	require.NoError(t, err)
	return c
}

func assertInvariants(t *testing.T, chunks []string, size, overlap int) {
	t.Helper()
	for i, chunk := range chunks {
		runes := []rune(chunk)
		assert.LessOrEqual(t, len(runes), size, "chunk %d exceeds size", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk), "chunk %d is blank", i)

		if i == 0 || overlap == 0 {
			continue
		}

		prev := []rune(chunks[i-1])
		require.GreaterOrEqual(t, len(prev), overlap)
		require.GreaterOrEqual(t, len(runes), overlap)
		assert.Equal(t, string(prev[len(prev)-overlap:]), string(runes[:overlap]), "overlap between %d and %d", i-1, i)
	}
}

func TestSplitOverlapInvariant(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		size    int
		overlap int
	}{
		{"default", sample, 512, 100},
		{"small window", sample, 80, 20},
		{"no overlap", sample, 64, 0},
		{"tight", sample, 10, 9},
		{"no whitespace", strings.Repeat("abcdefghij", 30), 50, 7},
		{"multibyte", strings.Repeat("é心 ", 120), 40, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newChunker(t, tc.size, tc.overlap)
			chunks := c.Split(tc.text)
			require.NotEmpty(t, chunks)
			assertInvariants(t, chunks, tc.size, tc.overlap)

			// Removing each overlap and joining must rebuild the text.
			var b strings.Builder
			for i, chunk := range chunks {
				runes := []rune(chunk)
				if i > 0 {
					runes = runes[tc.overlap:]
				}
				b.WriteString(string(runes))
			}
			assert.Equal(t, tc.text, b.String())
		})
	}
}

func TestSplitFitsOneChunk(t *testing.T) {
	c := newChunker(t, 512, 100)

	text := strings.Repeat("abcd ", 100)
	require.Len(t, []rune(text), 500)

	chunks := c.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitPrefersBoundaries(t *testing.T) {
	c := newChunker(t, 40, 5)

	text := "The first sentence is here. The second sentence follows after it."
	chunks := c.Split(text)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, "The first sentence is here. ", chunks[0])

	words := newChunker(t, 12, 2).Split("alpha beta gamma delta epsilon")
	assert.Equal(t, "alpha beta ", words[0])
}

func TestSplitDropsBlankText(t *testing.T) {
	c := newChunker(t, 16, 4)

	assert.Empty(t, c.Split(""))
	assert.Empty(t, c.Split("   \n\t  "))
}

func TestSplitDeterministic(t *testing.T) {
	c := newChunker(t, 70, 15)
	assert.Equal(t, c.Split(sample), c.Split(sample))
}

func TestNewChunkerValidates(t *testing.T) {
	_, err := NewChunker(chunker.WithChunkSize(0))
	require.Error(t, err)

	_, err = NewChunker(chunker.WithChunkSize(10), chunker.WithChunkOverlap(10))
	require.Error(t, err)

	_, err = NewChunker(chunker.WithChunkSize(10), chunker.WithChunkOverlap(-1))
	require.Error(t, err)
}
