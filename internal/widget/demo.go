package widget

import (
	"net/url"

	"github.com/ziadkadry99/efp-view/internal/species"
)

// DemoGene is an example gene shown as a tab on the demo page.
type DemoGene struct {
	Tab  string
	Gene species.GeneRecord
}

// Href is the link that mounts a widget for the gene.
func (d DemoGene) Href() string {
	return ViewPath(d.Gene) + "&tab=" + url.QueryEscape(d.Tab)
}

// DemoGenes are the example genes on the demo page.
var DemoGenes = []DemoGene{
	{Tab: "sorghum", Gene: species.GeneRecord{ID: "SORBI_3001G000100", SpeciesKey: "sorghum_bicolor"}},
	{Tab: "arabidopsis", Gene: species.GeneRecord{ID: "AT3G27340", SpeciesKey: "arabidopsis_thaliana"}},
	{Tab: "maize", Gene: species.GeneRecord{ID: "Zm00001eb383680", SpeciesKey: "zea_mays", Synonyms: []string{"GRMZM2G083841", "Zm00001d046170"}}},
	{Tab: "soybean", Gene: species.GeneRecord{ID: "GLYMA_06G047400", SpeciesKey: "glycine_max"}},
}

// ViewPath returns the /view URL that mounts a widget for gene.
func ViewPath(gene species.GeneRecord) string {
	q := url.Values{}
	q.Set("species", gene.SpeciesKey)
	q.Set("id", gene.ID)
	for _, s := range gene.Synonyms {
		q.Add("synonym", s)
	}
	for k, v := range gene.Xrefs {
		q.Add("xref", k+":"+v)
	}
	return "/view?" + q.Encode()
}
