package species

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolvable(t *testing.T) {
	for _, key := range Default.Keys() {
		if !Resolvable(GeneRecord{ID: "X", SpeciesKey: key}) {
			t.Errorf("Resolvable(%q) = false, want true", key)
		}
	}
	for _, key := range []string{"unknown_species", "", "Zea_mays", "maize"} {
		if Resolvable(GeneRecord{ID: "X", SpeciesKey: key}) {
			t.Errorf("Resolvable(%q) = true, want false", key)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve(GeneRecord{ID: "X", SpeciesKey: "unknown_species"})
	if !errors.Is(err, ErrUnknownSpecies) {
		t.Fatalf("expected ErrUnknownSpecies, got %v", err)
	}
}

func TestAliasSharesEntry(t *testing.T) {
	maize, err := Resolve(GeneRecord{SpeciesKey: "zea_mays"})
	if err != nil {
		t.Fatalf("Resolve(zea_mays): %v", err)
	}
	b73, err := Resolve(GeneRecord{SpeciesKey: "zea_maysb73"})
	if err != nil {
		t.Fatalf("Resolve(zea_maysb73): %v", err)
	}
	if maize != b73 {
		t.Error("alias should resolve to the same entry as its target")
	}
	if target, ok := Default.AliasOf("zea_maysb73"); !ok || target != "zea_mays" {
		t.Errorf("AliasOf = %q, %v", target, ok)
	}
	if _, ok := Default.AliasOf("zea_mays"); ok {
		t.Error("canonical key reported as alias")
	}
}

func TestWithAliasUnknownTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTable().WithAlias("a", "b")
}

func TestFormatExternalGeneID(t *testing.T) {
	tests := []struct {
		name string
		gene GeneRecord
		want string
	}{
		{
			name: "sorghum prefix",
			gene: GeneRecord{ID: "SORBI_3001G000100", SpeciesKey: "sorghum_bicolor"},
			want: "Sobic.3001G000100",
		},
		{
			name: "arabidopsis identity",
			gene: GeneRecord{ID: "AT3G27340", SpeciesKey: "arabidopsis_thaliana"},
			want: "AT3G27340",
		},
		{
			name: "maize v4 synonym",
			gene: GeneRecord{ID: "Zm00001eb383680", SpeciesKey: "zea_mays", Synonyms: []string{"GRMZM2G083841", "Zm00001d046170"}},
			want: "Zm00001d046170",
		},
		{
			name: "maize alias",
			gene: GeneRecord{ID: "Zm00001eb383680", SpeciesKey: "zea_maysb73", Synonyms: []string{"Zm00001d046170"}},
			want: "Zm00001d046170",
		},
		{
			name: "maize without synonyms",
			gene: GeneRecord{ID: "Zm00001eb383680", SpeciesKey: "zea_mays"},
			want: "Zm00001eb383680",
		},
		{
			name: "soybean prefix",
			gene: GeneRecord{ID: "GLYMA_06G047400", SpeciesKey: "glycine_max"},
			want: "Glyma.06G047400",
		},
		{
			name: "rice with msu xref",
			gene: GeneRecord{ID: "Os01g0100100", SpeciesKey: "oryza_sativa", Xrefs: map[string]string{"msu": "LOC_Os01g01010"}},
			want: "LOC_Os01g01010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Resolve(tt.gene)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			got, err := FormatExternalGeneID(e, tt.gene)
			if err != nil {
				t.Fatalf("FormatExternalGeneID: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefixRewriteOnlyTouchesPrefix(t *testing.T) {
	r := PrefixRewrite{From: "GLYMA_", To: "Glyma."}
	tests := []struct {
		id, want string
	}{
		{"GLYMA_06G_GLYMA_1", "Glyma.06G_GLYMA_1"},
		{"XGLYMA_06G047400", "XGLYMA_06G047400"},
		{"Glyma.06G047400", "Glyma.06G047400"},
	}
	for _, tt := range tests {
		got, err := r.Format(GeneRecord{ID: tt.id})
		if err != nil {
			t.Fatalf("Format(%q): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSynonymLastMatchWins(t *testing.T) {
	r := SynonymLastMatch{Marker: "Zm00001d"}
	got, _ := r.Format(GeneRecord{ID: "primary", Synonyms: []string{"Zm00001d000001", "other", "Zm00001d000002"}})
	if got != "Zm00001d000002" {
		t.Errorf("got %q, want the last matching synonym", got)
	}
}

func TestMissingLookupIsIncomplete(t *testing.T) {
	gene := GeneRecord{ID: "Os01g0100100", SpeciesKey: "oryza_sativa"}
	e, err := Resolve(gene)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	id, err := FormatExternalGeneID(e, gene)
	if !errors.Is(err, ErrIncompleteMapping) {
		t.Fatalf("expected ErrIncompleteMapping, got %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}

func TestNewStudyLabel(t *testing.T) {
	s := NewStudy("Klepikova_Atlas_v2")
	if s.Label != "Klepikova Atlas v2" {
		t.Errorf("label = %q", s.Label)
	}
}

func TestApplyStudyCorrectionsSoybean(t *testing.T) {
	e, _ := Resolve(GeneRecord{SpeciesKey: "glycine_max"})
	fetched := []Study{
		NewStudy("soybean"),
		NewStudy("soybean_embryonic_development"),
		NewStudy("soybean_senescence"),
	}

	got := ApplyStudyCorrections(e, fetched)
	want := []Study{
		{Value: "soybean", Label: "Libault et al. 2010 atlas"},
		{Value: "soybean_severin", Label: "Severin et al. 2010 atlas"},
		NewStudy("soybean_embryonic_development"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corrected studies mismatch (-want +got):\n%s", diff)
	}

	again := ApplyStudyCorrections(e, fetched)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("corrections not deterministic (-first +second):\n%s", diff)
	}
	if fetched[0].Label != "soybean" {
		t.Error("input slice was modified")
	}
}

func TestApplyStudyCorrectionsWithoutFix(t *testing.T) {
	e, _ := Resolve(GeneRecord{SpeciesKey: "arabidopsis_thaliana"})
	in := []Study{NewStudy("a_study"), NewStudy("b_study")}
	got := ApplyStudyCorrections(e, in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("identity correction changed studies:\n%s", diff)
	}
}

func TestGenomes(t *testing.T) {
	want := []string{"arabidopsis", "maize", "rice", "sorghum", "soybean"}
	if diff := cmp.Diff(want, Default.Genomes()); diff != "" {
		t.Errorf("genomes mismatch:\n%s", diff)
	}
}
