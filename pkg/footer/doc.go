// Package footer decides the arrangement of a chart footer under a width
// constraint.
//
// A footer carries up to four content groups: the sources line, an optional
// note, the license line (optionally prefixed with the chart's origin URL),
// and the action-button cluster (download, share, full-screen, explore).
// Given the available pixel width and a text measurer, [Decide] produces a
// [Decision]: which groups get a full-width row of their own, which share
// the bottom row with the buttons, whether the origin URL survives, whether
// buttons carry labels, and the exact total height the parent layout must
// reserve. [Arrange] turns a Decision into positioned blocks for rendering.
//
// # Pipeline
//
//	measurer := textmeasure.NewMemo(textmeasure.NewFace(fonts.Regular()))
//	decision := footer.Decide(input, measurer)
//	arrangement := footer.Arrange(decision)
//
// Both steps are pure: identical inputs yield identical values, there is no
// hidden state, and recomputation happens from scratch on every width or
// content change. Render sinks consume the Arrangement only and never
// re-measure.
//
// # Degradation
//
// The engine has no failure path. When space runs out it degrades in
// defined steps — the origin URL is dropped whole, buttons fall back to
// icons, and below the buttons' own minimum width the output may overlap.
// Overlap is reported on the Decision as Degraded rather than returned as
// an error; guaranteeing a sane minimum width is the caller's job.
package footer
