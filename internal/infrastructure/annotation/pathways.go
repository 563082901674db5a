package annotation

import (
	"bufio"
	"io"
	"strings"

	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// ParsePathwayMapping reads the gene-to-pathway membership table:
//
//	gene<TAB>pw1;pw2;…
//
// A gene with an empty second field still enters the mapping with no
// pathways: it belongs to the background universe even when the category
// under test never references it.  Genes appearing on several lines have
// their pathway lists concatenated.
func ParsePathwayMapping(r io.Reader) (map[string][]string, error) {
	mapping := make(map[string][]string)

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
			return nil, errors.Newf(errors.ErrCodePathwayTableFormat,
				"line %d: expected gene<TAB>pathways, got %d field(s)", lineNo, len(fields))
		}

		gene := strings.TrimSpace(fields[0])
		if gene == "" {
			return nil, errors.Newf(errors.ErrCodePathwayTableFormat,
				"line %d: empty gene id", lineNo)
		}

		if _, ok := mapping[gene]; !ok {
			mapping[gene] = nil
		}
		for _, raw := range strings.Split(fields[1], ";") {
			if pw := strings.TrimSpace(raw); pw != "" {
				mapping[gene] = append(mapping[gene], pw)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "reading pathway mapping")
	}
	return mapping, nil
}

// ParsePathwayNames reads the pathway display-name table:
//
//	pw<TAB>display name
//
// Later lines override earlier ones.  Pathways absent from the table fall
// back to their identifier at background construction.
func ParsePathwayNames(r io.Reader) (map[string]string, error) {
	names := make(map[string]string)

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
			return nil, errors.Newf(errors.ErrCodePathwayTableFormat,
				"line %d: expected pathway<TAB>name, got %d field(s)", lineNo, len(fields))
		}

		pw := strings.TrimSpace(fields[0])
		if pw == "" {
			return nil, errors.Newf(errors.ErrCodePathwayTableFormat,
				"line %d: empty pathway id", lineNo)
		}
		names[pw] = strings.TrimSpace(fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "reading pathway names")
	}
	return names, nil
}
