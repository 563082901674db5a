package annotation

import (
	"bufio"
	"io"
	"strings"

	"github.com/ontomix/GeneSet-Insight/internal/domain/enrichment"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// ParseGeneAliases reads the alias table backing the pathway-mode resolver:
//
//	gene<TAB>preferred<TAB>alias;alias…
//
// The third field is optional; aliases are ';'-separated with surrounding
// whitespace ignored.  When a gene appears on more than one line the later
// line wins, matching how curated alias dumps append corrections at the end.
func ParseGeneAliases(r io.Reader) (enrichment.AliasTable, error) {
	table := make(enrichment.AliasTable)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if skipLine(line) {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.Newf(errors.ErrCodeAliasTableFormat,
				"line %d: expected gene<TAB>preferred[<TAB>aliases], got %d field(s)", lineNo, len(fields))
		}

		gene := strings.TrimSpace(fields[0])
		if gene == "" {
			return nil, errors.Newf(errors.ErrCodeAliasTableFormat,
				"line %d: empty gene id", lineNo)
		}

		entry := enrichment.AliasEntry{Preferred: strings.TrimSpace(fields[1])}
		if len(fields) >= 3 {
			for _, raw := range strings.Split(fields[2], ";") {
				if alias := strings.TrimSpace(raw); alias != "" {
					entry.Aliases = append(entry.Aliases, alias)
				}
			}
		}
		table[gene] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "reading alias table")
	}
	return table, nil
}
