package enrichment

import "strings"

// Resolver maps one caller-supplied identifier into the background's gene
// namespace.  Implementations return the resolved identifier and whether
// resolution succeeded; an unresolvable identifier is expected data, never
// an error.
type Resolver interface {
	Resolve(queryID string) (string, bool)
}

// directResolver admits identifiers that already live in the background's
// namespace.  Ontology-mode queries need nothing more.
type directResolver struct {
	bg *Background
}

// NewDirectResolver returns the identity resolver over bg's universe.
func NewDirectResolver(bg *Background) Resolver {
	return &directResolver{bg: bg}
}

func (r *directResolver) Resolve(queryID string) (string, bool) {
	if r.bg.Contains(queryID) {
		return queryID, true
	}
	return "", false
}

// AliasEntry carries the preferred display name and the known aliases of one
// query-space gene identifier.
type AliasEntry struct {
	Preferred string
	Aliases   []string
}

// AliasTable maps query-space identifiers to their resolution entries.
type AliasTable map[string]AliasEntry

// aliasResolver implements the pathway-mode fallback chain, in strict
// priority order: the identifier itself, then the preferred display name,
// then each alias tried verbatim, upper-cased and lower-cased.  The first
// background hit wins and resolution stops.
type aliasResolver struct {
	bg      *Background
	aliases AliasTable
}

// NewAliasResolver returns the layered-fallback resolver over bg's universe.
func NewAliasResolver(bg *Background, aliases AliasTable) Resolver {
	return &aliasResolver{bg: bg, aliases: aliases}
}

func (r *aliasResolver) Resolve(queryID string) (string, bool) {
	if r.bg.Contains(queryID) {
		return queryID, true
	}

	entry, ok := r.aliases[queryID]
	if !ok {
		return "", false
	}

	if entry.Preferred != "" && r.bg.Contains(entry.Preferred) {
		return entry.Preferred, true
	}

	for _, alias := range entry.Aliases {
		for _, candidate := range []string{alias, strings.ToUpper(alias), strings.ToLower(alias)} {
			if r.bg.Contains(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}
