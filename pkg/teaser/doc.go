// Package teaser builds the substitute text shown when pkg/restriction
// denies access to a content item.
//
// A teaser is the restriction message run through a transform pipeline
// (by default: paragraph wrapping, then shortcode expansion), optionally
// preceded by a plain-text excerpt of the real content. Excerpts are
// markup-stripped with bluemonday before truncation so the cut can never
// leave an unbalanced tag, then capped at a configurable word count
// (50 by default).
//
//	f := teaser.NewFormatter(
//		teaser.WithExcerptPolicy(teaser.ExcerptAlways),
//		teaser.WithExcerptLength(30),
//	)
//	out := f.Format("This content is restricted to subscribers.", item)
package teaser
