package mcp

import "github.com/mark3labs/mcp-go/mcp"

// resolveGeneTool defines the resolve_gene MCP tool.
var resolveGeneTool = mcp.NewTool("resolve_gene",
	mcp.WithDescription("Translate a gene identifier into the identifier and genome the BAR eFP service expects."),
	mcp.WithString("species",
		mcp.Required(),
		mcp.Description("Species key, e.g. zea_mays or glycine_max"),
	),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Gene identifier as stored in the host database"),
	),
	mcp.WithString("synonyms",
		mcp.Description("Comma-separated alternate identifiers for the gene"),
	),
)

// listStudiesTool defines the list_studies MCP tool.
var listStudiesTool = mcp.NewTool("list_studies",
	mcp.WithDescription("List the eFP expression studies BAR offers for a species, in display order."),
	mcp.WithString("species",
		mcp.Required(),
		mcp.Description("Species key, e.g. arabidopsis_thaliana"),
	),
)

// efpURLsTool defines the efp_urls MCP tool.
var efpURLsTool = mcp.NewTool("efp_urls",
	mcp.WithDescription("Build the eFP image URL and the interactive BAR page URL for a gene in a study."),
	mcp.WithString("species",
		mcp.Required(),
		mcp.Description("Species key"),
	),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Gene identifier as stored in the host database"),
	),
	mcp.WithString("synonyms",
		mcp.Description("Comma-separated alternate identifiers for the gene"),
	),
	mcp.WithString("study",
		mcp.Description("Study value; defaults to the first study listed for the species"),
	),
)
