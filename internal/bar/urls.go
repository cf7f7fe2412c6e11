// Package bar talks to the Bio-Analytic Resource (BAR) eFP web services
// at the University of Toronto.
package bar

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public BAR host.
const DefaultBaseURL = "https://bar.utoronto.ca"

// Static assets shown alongside the image.
const (
	DefaultLogoURL    = "https://bar.utoronto.ca/bbc_logo_small.gif"
	DefaultSpinnerURL = "https://www.sorghumbase.org/static/images/dna_spinner.svg"
)

// URLs builds BAR URLs against a base host.
type URLs struct {
	Base string
}

func (u URLs) base() string {
	if u.Base == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u.Base, "/")
}

// Image returns the URL of the absolute-mode eFP image for a gene in a study.
func (u URLs) Image(genome, study, gene string) string {
	return u.base() + "/api/efp_image/efp_" + url.PathEscape(genome) + "/" +
		url.PathEscape(study) + "/Absolute/" + url.PathEscape(gene)
}

// Details returns the URL of the interactive eFP browser page.
func (u URLs) Details(genome, study, gene string) string {
	q := url.Values{}
	q.Set("dataSource", study)
	q.Set("mode", "Absolute")
	q.Set("primaryGene", gene)
	return u.base() + "/efp_" + url.PathEscape(genome) + "/cgi-bin/efpWeb.cgi?" + q.Encode()
}

// Studies returns the URL listing the data sources for a genome.
func (u URLs) Studies(genome string) string {
	return u.base() + "/api/efp_image/get_efp_data_source/" + url.PathEscape(genome)
}
