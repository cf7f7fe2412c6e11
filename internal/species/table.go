package species

import (
	"fmt"
	"maps"
	"slices"
)

// Table maps species keys, including aliases, to shared entries.
type Table struct {
	entries map[string]*Entry
	aliases map[string]string
}

// NewTable builds a table from canonical entries.
func NewTable(entries ...*Entry) *Table {
	t := &Table{
		entries: make(map[string]*Entry, len(entries)),
		aliases: make(map[string]string),
	}
	for _, e := range entries {
		t.entries[e.Key] = e
	}
	return t
}

// WithAlias registers alias as another key for target. It panics when
// target is unknown since tables are built at init time.
func (t *Table) WithAlias(alias, target string) *Table {
	e, ok := t.entries[target]
	if !ok {
		panic(fmt.Sprintf("species: alias %q targets unknown species %q", alias, target))
	}
	t.entries[alias] = e
	t.aliases[alias] = target
	return t
}

// Resolvable reports whether the gene's species has an entry.
func (t *Table) Resolvable(gene GeneRecord) bool {
	_, ok := t.entries[gene.SpeciesKey]
	return ok
}

// Resolve returns the entry for the gene's species, following aliases.
func (t *Table) Resolve(gene GeneRecord) (*Entry, error) {
	e, ok := t.entries[gene.SpeciesKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, gene.SpeciesKey)
	}
	return e, nil
}

// Lookup returns the entry for a species key.
func (t *Table) Lookup(key string) (*Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Keys returns every resolvable key, aliases included, sorted.
func (t *Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// AliasOf returns the canonical key an alias points at.
func (t *Table) AliasOf(key string) (string, bool) {
	target, ok := t.aliases[key]
	return target, ok
}

// Genomes returns the distinct genome slugs in the table, sorted.
func (t *Table) Genomes() []string {
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		seen[e.Genome] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// FormatExternalGeneID applies the entry's gene rule. Callers must have
// resolved the entry first.
func FormatExternalGeneID(e *Entry, gene GeneRecord) (string, error) {
	return e.Gene.Format(gene)
}

// ApplyStudyCorrections runs the entry's study fix, if any. The input is
// never modified.
func ApplyStudyCorrections(e *Entry, studies []Study) []Study {
	if e.Fix == nil {
		return slices.Clone(studies)
	}
	return e.Fix.Apply(slices.Clone(studies))
}
