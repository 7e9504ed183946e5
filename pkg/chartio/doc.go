// Package chartio provides file import and export for footer content
// and rendered artifacts.
//
// # Overview
//
// Footer content can be authored as a small TOML or JSON document and
// imported into a [footer.Input]. The format carries everything the
// layout engine consumes: the sources line, the note, licensing, the
// origin link, and the action-button configuration.
//
// # Content Format
//
// TOML example:
//
//	sources = "Data source: World Bank (2024)"
//	note = "Note: Values are inflation-adjusted."
//	license = "CC BY"
//	origin_url = "https://example.org/grapher/gdp-growth"
//
//	[buttons]
//	canonical_url = "https://example.org/grapher/gdp-growth"
//	hide_share = false
//
// The same keys apply in JSON. The file extension selects the decoder:
// .toml for TOML, .json for JSON.
//
// # Export
//
// Use [WriteArtifacts] to write the pipeline's rendered outputs next to
// each other, named after a base path with the format as extension.
package chartio
