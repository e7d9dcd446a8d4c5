package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertedIndexRecordAndLookup(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Record("python", "doc1")
	ix.Record("python", "doc2")

	got := ix.Lookup("python")
	require.Len(t, got, 2)
	assert.Equal(t, Posting{DocID: "doc1", Frequency: 1}, got[0])
	assert.Equal(t, Posting{DocID: "doc2", Frequency: 1}, got[1])
}

func TestInvertedIndexNoDuplicatePostings(t *testing.T) {
	ix := NewInvertedIndex()
	for i := 0; i < 5; i++ {
		ix.Record("word", "doc1")
	}

	got := ix.Lookup("word")
	require.Len(t, got, 1, "repeated records for the same document must increment, not append")
	assert.Equal(t, 5, got[0].Frequency)
}

func TestInvertedIndexInsertionOrderPreserved(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Record("go", "zeta")
	ix.Record("go", "alpha")
	ix.Record("go", "mid")
	ix.Record("go", "zeta")

	got := ix.Lookup("go")
	require.Len(t, got, 3)
	assert.Equal(t, "zeta", got[0].DocID, "first document to contain the word stays first")
	assert.Equal(t, "alpha", got[1].DocID)
	assert.Equal(t, "mid", got[2].DocID)
	assert.Equal(t, 2, got[0].Frequency)
}

func TestInvertedIndexUnknownWord(t *testing.T) {
	ix := NewInvertedIndex()
	got := ix.Lookup("missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInvertedIndexCaseNormalization(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Record("Python", "doc1")
	ix.Record("PYTHON", "doc1")

	got := ix.Lookup("python")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Frequency)
}

func TestInvertedIndexVocabularySize(t *testing.T) {
	ix := NewInvertedIndex()
	assert.Equal(t, 0, ix.VocabularySize())

	ix.Record("one", "d1")
	ix.Record("two", "d1")
	ix.Record("one", "d2")
	assert.Equal(t, 2, ix.VocabularySize())
}

func TestInvertedIndexLookupReturnsCopy(t *testing.T) {
	ix := NewInvertedIndex()
	ix.Record("word", "doc1")

	got := ix.Lookup("word")
	got[0].Frequency = 99

	assert.Equal(t, 1, ix.Lookup("word")[0].Frequency)
}
