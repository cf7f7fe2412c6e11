package species

// Default is the species table used by the service.
var Default = NewTable(
	&Entry{
		Key:    "arabidopsis_thaliana",
		Genome: "arabidopsis",
		Gene:   Identity{},
	},
	&Entry{
		Key:    "sorghum_bicolor",
		Genome: "sorghum",
		Gene:   PrefixRewrite{From: "SORBI_", To: "Sobic."},
	},
	&Entry{
		Key:    "zea_mays",
		Genome: "maize",
		// B73 v4 gene models; BAR has no expression data for v5 IDs.
		Gene: SynonymLastMatch{Marker: "Zm00001d"},
	},
	&Entry{
		Key:    "glycine_max",
		Genome: "soybean",
		Gene:   PrefixRewrite{From: "GLYMA_", To: "Glyma."},
		Fix: FilterPrepend{
			Drop: []string{"soybean", "soybean_severin", "soybean_senescence"},
			Prepend: []Study{
				{Value: "soybean_severin", Label: "Severin et al. 2010 atlas"},
				{Value: "soybean", Label: "Libault et al. 2010 atlas"},
			},
		},
	},
	&Entry{
		Key:    "oryza_sativa",
		Genome: "rice",
		// TODO: load an IRGSP to MSU identifier table so rice genes resolve without an msu xref.
		Gene: MissingLookup{Xref: "msu"},
	},
).WithAlias("zea_maysb73", "zea_mays")

// Resolvable reports whether gene can be shown using the default table.
func Resolvable(gene GeneRecord) bool {
	return Default.Resolvable(gene)
}

// Resolve looks gene up in the default table.
func Resolve(gene GeneRecord) (*Entry, error) {
	return Default.Resolve(gene)
}
