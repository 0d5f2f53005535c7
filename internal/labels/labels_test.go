package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	got := Merge([]string{"Entrepreneur", "Corporate Employee", "Government Officer", "Artist"}, MergeTable)
	assert.Equal(t, []string{"Entrepreneur", "Conventional Career", "Conventional Career", "Artist"}, got)
}

func TestFitSortsClasses(t *testing.T) {
	enc, err := Fit([]string{"Scientist", "Artist", "Scientist", "Entrepreneur"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist", "Entrepreneur", "Scientist"}, enc.Classes)
	assert.Equal(t, 3, enc.NumClasses())

	idx, err := enc.Transform([]string{"Scientist", "Artist"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, idx)

	label, err := enc.Inverse(1)
	require.NoError(t, err)
	assert.Equal(t, "Entrepreneur", label)
}

func TestEncoderErrors(t *testing.T) {
	_, err := Fit(nil)
	assert.Error(t, err)

	enc := NewEncoder([]string{"A", "B"})
	_, err = enc.Transform([]string{"C"})
	assert.Error(t, err)
	_, err = enc.Inverse(2)
	assert.Error(t, err)
	_, err = enc.Inverse(-1)
	assert.Error(t, err)
}

func TestDecodedEncoderRebuildsIndex(t *testing.T) {
	enc := &Encoder{Classes: []string{"A", "B"}}
	idx, err := enc.Transform([]string{"B"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, idx)
}
