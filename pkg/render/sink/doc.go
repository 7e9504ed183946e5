// Package sink renders a footer arrangement to output formats.
//
// Every sink consumes a [footer.Arrangement] and nothing else: all layout
// decisions, wrapping and measurement happened upstream, so the sinks are
// pure serialization. Three formats are provided:
//
//   - SVG: static vector output, the primary export format
//   - PNG: raster output drawn with real font faces
//   - JSON: machine-readable arrangement (and optionally the decision)
//
// The interactive terminal preview is the fourth consumer of the same
// Arrangement value; it lives in the CLI because it owns an event loop
// rather than producing bytes.
package sink
