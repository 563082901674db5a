package annotation

import (
	"bufio"
	"io"
	"strings"

	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// maxGeneIDLength bounds a single query identifier.  Anything longer means
// the caller handed us a binary or column-oriented file by mistake.
const maxGeneIDLength = 256

// ParseGeneList reads a query gene list: identifiers separated by newlines,
// commas, semicolons, or whitespace, with '#' starting a comment that runs
// to the end of its line.  Duplicates are preserved — the engine reports the
// raw query size and collapses duplicates itself.
func ParseGeneList(r io.Reader) ([]string, error) {
	var genes []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		for _, token := range strings.FieldsFunc(line, isGeneSeparator) {
			gene := strings.TrimSpace(token)
			if gene == "" {
				continue
			}
			if len(gene) > maxGeneIDLength {
				return nil, errors.Newf(errors.ErrCodeGeneListFormat,
					"line %d: token of %d bytes is not a gene identifier", lineNo, len(gene))
			}
			genes = append(genes, gene)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "reading gene list")
	}
	return genes, nil
}

func isGeneSeparator(r rune) bool {
	switch r {
	case ',', ';', ' ', '\t':
		return true
	}
	return false
}
