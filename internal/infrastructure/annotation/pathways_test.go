package annotation_test

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontomix/GeneSet-Insight/internal/infrastructure/annotation"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

func TestParsePathwayMapping_Basic(t *testing.T) {
	t.Parallel()
	src := "TP53\tPW1;PW2\nBRCA1\tPW1\n"

	mapping, err := annotation.ParsePathwayMapping(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"PW1", "PW2"}, mapping["TP53"])
	assert.Equal(t, []string{"PW1"}, mapping["BRCA1"])
}

func TestParsePathwayMapping_EmptyPathwaysKeepGeneInUniverse(t *testing.T) {
	t.Parallel()
	mapping, err := annotation.ParsePathwayMapping(strings.NewReader("EGFR\t\n"))
	require.NoError(t, err)

	// The gene must count toward N even with nothing annotated.
	pws, ok := mapping["EGFR"]
	assert.True(t, ok)
	assert.Empty(t, pws)
}

func TestParsePathwayMapping_MultipleLinesConcatenate(t *testing.T) {
	t.Parallel()
	src := "TP53\tPW1\nTP53\tPW2;PW3\n"

	mapping, err := annotation.ParsePathwayMapping(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"PW1", "PW2", "PW3"}, mapping["TP53"])
}

func TestParsePathwayMapping_TooFewFields(t *testing.T) {
	t.Parallel()
	_, err := annotation.ParsePathwayMapping(strings.NewReader("TP53\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePathwayTableFormat))
}

func TestParsePathwayMapping_ReaderFailure(t *testing.T) {
	t.Parallel()
	_, err := annotation.ParsePathwayMapping(iotest.ErrReader(io.ErrUnexpectedEOF))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnnotationSourceIO))
}

func TestParsePathwayNames_Basic(t *testing.T) {
	t.Parallel()
	src := "PW1\tApoptosis\nPW2\tCell cycle checkpoint\n"

	names, err := annotation.ParsePathwayNames(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Apoptosis", names["PW1"])
	assert.Equal(t, "Cell cycle checkpoint", names["PW2"])
}

func TestParsePathwayNames_LaterLineWins(t *testing.T) {
	t.Parallel()
	src := "PW1\tOld name\nPW1\tNew name\n"

	names, err := annotation.ParsePathwayNames(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "New name", names["PW1"])
}

func TestParsePathwayNames_TooFewFields(t *testing.T) {
	t.Parallel()
	_, err := annotation.ParsePathwayNames(strings.NewReader("PW1\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePathwayTableFormat))
}

func TestParsePathwayNames_EmptyPathwayID(t *testing.T) {
	t.Parallel()
	_, err := annotation.ParsePathwayNames(strings.NewReader(" \tname\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePathwayTableFormat))
}
