package species

import "strings"

// GeneRecord is a gene as the host application knows it.
type GeneRecord struct {
	ID         string            `json:"id"`                 // Internal identifier; format varies by species.
	SpeciesKey string            `json:"species"`            // Key into the species table (e.g. zea_mays).
	Synonyms   []string          `json:"synonyms,omitempty"` // Alternate identifiers in other naming schemes.
	Xrefs      map[string]string `json:"xrefs,omitempty"`    // Cross references keyed by source name.
}

// Study is one named expression dataset available for a genome.
type Study struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewStudy builds a Study whose label is the value with underscores
// replaced by spaces.
func NewStudy(value string) Study {
	return Study{Value: value, Label: strings.ReplaceAll(value, "_", " ")}
}

// RuleKind names a gene identifier formatting strategy.
type RuleKind string

const (
	RuleIdentity      RuleKind = "identity"
	RulePrefixRewrite RuleKind = "prefix_rewrite"
	RuleSynonymLast   RuleKind = "synonym_last_match"
	RuleMissingLookup RuleKind = "missing_lookup"
)

// Entry is one row of the species table. Entries are shared between a
// species key and its aliases and must not be modified.
type Entry struct {
	Key    string   // Canonical species key.
	Genome string   // BAR genome slug used in URLs.
	Gene   GeneRule // Maps a GeneRecord to the BAR gene identifier.
	Fix    StudyFix // Optional species-specific study list correction.
}
