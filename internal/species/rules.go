package species

import (
	"fmt"
	"slices"
	"strings"
)

// GeneRule converts an internal gene record into the identifier BAR expects.
type GeneRule interface {
	Kind() RuleKind
	Format(gene GeneRecord) (string, error)
}

// Identity passes the gene ID through unchanged.
type Identity struct{}

func (Identity) Kind() RuleKind { return RuleIdentity }

func (Identity) Format(gene GeneRecord) (string, error) {
	return gene.ID, nil
}

// PrefixRewrite replaces a leading From with To, e.g.
// GLYMA_06G047400 -> Glyma.06G047400. IDs without the prefix pass through.
type PrefixRewrite struct {
	From string
	To   string
}

func (PrefixRewrite) Kind() RuleKind { return RulePrefixRewrite }

func (r PrefixRewrite) Format(gene GeneRecord) (string, error) {
	if rest, ok := strings.CutPrefix(gene.ID, r.From); ok {
		return r.To + rest, nil
	}
	return gene.ID, nil
}

// SynonymLastMatch picks the last synonym containing Marker, falling back
// to the gene ID when none does.
type SynonymLastMatch struct {
	Marker string
}

func (SynonymLastMatch) Kind() RuleKind { return RuleSynonymLast }

func (r SynonymLastMatch) Format(gene GeneRecord) (string, error) {
	id := gene.ID
	for _, syn := range gene.Synonyms {
		if strings.Contains(syn, r.Marker) {
			id = syn
		}
	}
	return id, nil
}

// MissingLookup reads the BAR identifier from a cross reference that most
// records do not carry yet. Without it the mapping is reported as
// incomplete rather than guessed from another field.
type MissingLookup struct {
	Xref string
}

func (MissingLookup) Kind() RuleKind { return RuleMissingLookup }

func (r MissingLookup) Format(gene GeneRecord) (string, error) {
	if id := gene.Xrefs[r.Xref]; id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s gene %s has no %q cross reference", ErrIncompleteMapping, gene.SpeciesKey, gene.ID, r.Xref)
}

// StudyFix corrects a fetched study list for one species.
type StudyFix interface {
	Apply(studies []Study) []Study
}

// FilterPrepend removes studies by exact value and then prepends the
// overrides one at a time, so the last override ends up first. Overrides
// are added whether or not the fetch returned them.
type FilterPrepend struct {
	Drop    []string
	Prepend []Study
}

func (f FilterPrepend) Apply(studies []Study) []Study {
	out := make([]Study, 0, len(studies)+len(f.Prepend))
	for _, s := range studies {
		if !slices.Contains(f.Drop, s.Value) {
			out = append(out, s)
		}
	}
	for _, s := range f.Prepend {
		out = slices.Insert(out, 0, s)
	}
	return out
}
