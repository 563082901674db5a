// Package annotation reads the tab-separated file formats that feed the
// enrichment engine: GMT term-to-gene sets, pathway membership and name
// tables, gene alias tables, and plain query gene lists.  Parsers are strict
// about line structure — a structurally unreadable file is a typed error —
// but they never interpret content: unmatched identifiers are the engine's
// business, not theirs.
package annotation

import (
	"bufio"
	"io"
	"strings"

	"github.com/ontomix/GeneSet-Insight/internal/domain/enrichment"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// ParseGMT reads a GMT annotation source: one term per line,
//
//	term<TAB>description<TAB>gene1<TAB>gene2…
//
// and inverts it into the gene-keyed mapping the engine consumes.  A
// description of the form "BP:signal transduction" carries its annotation
// category as a letters-only prefix before the first colon; descriptions
// without such a prefix leave the category empty.  Blank lines and lines
// starting with '#' are skipped.  A line with fewer than two fields or a
// term id appearing twice make the file unusable and abort the parse.
func ParseGMT(r io.Reader) (map[string][]enrichment.TermRef, error) {
	mapping := make(map[string][]enrichment.TermRef)
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if skipLine(line) {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.Newf(errors.ErrCodeAnnotationFormat,
				"line %d: expected term<TAB>description<TAB>genes, got %d field(s)", lineNo, len(fields))
		}

		termID := strings.TrimSpace(fields[0])
		if termID == "" {
			return nil, errors.Newf(errors.ErrCodeAnnotationFormat,
				"line %d: empty term id", lineNo)
		}
		if _, dup := seen[termID]; dup {
			return nil, errors.Newf(errors.ErrCodeAnnotationDuplicate,
				"line %d: term %q defined twice", lineNo, termID)
		}
		seen[termID] = struct{}{}

		category, description := splitCategory(strings.TrimSpace(fields[1]))
		ref := enrichment.TermRef{ID: termID, Description: description, Category: category}

		for _, raw := range fields[2:] {
			gene := strings.TrimSpace(raw)
			if gene == "" {
				continue
			}
			mapping[gene] = append(mapping[gene], ref)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "reading GMT source")
	}
	return mapping, nil
}

// splitCategory extracts a letters-only category prefix ("BP:desc" → "BP",
// "desc").  Anything else, including prefixes with digits or spaces, is
// treated as part of the description.
func splitCategory(description string) (string, string) {
	idx := strings.IndexByte(description, ':')
	if idx <= 0 {
		return "", description
	}
	prefix := description[:idx]
	for _, r := range prefix {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return "", description
		}
	}
	return prefix, strings.TrimSpace(description[idx+1:])
}

// skipLine reports whether a line carries no data: blank or comment.
func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
