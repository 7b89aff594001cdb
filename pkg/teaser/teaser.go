package teaser

// ExcerptPolicy is the site-wide rule for whether a teaser includes an
// excerpt of the restricted content.
type ExcerptPolicy string

const (
	// ExcerptAlways prepends an excerpt to every teaser.
	ExcerptAlways ExcerptPolicy = "always"
	// ExcerptIndividual prepends an excerpt only for items that opted in.
	// This is the default.
	ExcerptIndividual ExcerptPolicy = "individual"
	// ExcerptNever shows the message alone.
	ExcerptNever ExcerptPolicy = "never"
)

// DefaultExcerptLength is the word count used when no override is set.
const DefaultExcerptLength = 50

// Item is the restricted content the teaser substitutes for.
type Item struct {
	Content     string // full HTML content, used only for the excerpt
	ShowExcerpt bool   // item-level opt-in under ExcerptIndividual
}

// Formatter builds the substitute text shown in place of restricted content.
type Formatter struct {
	policy        ExcerptPolicy
	excerptLength int
	transforms    []Transform
}

// NewFormatter creates a Formatter. Without options it uses the individual
// excerpt policy, a 50-word excerpt, and the default message pipeline of
// paragraph wrapping followed by shortcode expansion (with no shortcodes
// registered).
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		policy:        ExcerptIndividual,
		excerptLength: DefaultExcerptLength,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.transforms == nil {
		f.transforms = []Transform{Paragraphs, ExpandShortcodes(nil)}
	}

	return f
}

// Format renders the teaser for an item: the transformed message, preceded
// by a markup-stripped excerpt when the excerpt policy applies to the item.
// Formatting never fails; malformed input passes through.
func (f *Formatter) Format(message string, item Item) string {
	for _, t := range f.transforms {
		message = t(message)
	}

	if f.showExcerpt(item) {
		return Excerpt(item.Content, f.excerptLength) + message
	}

	return message
}

func (f *Formatter) showExcerpt(item Item) bool {
	switch f.policy {
	case ExcerptAlways:
		return true
	case ExcerptIndividual:
		return item.ShowExcerpt
	default:
		return false
	}
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithExcerptPolicy sets the site-wide excerpt policy.
// Invalid values are ignored.
func WithExcerptPolicy(p ExcerptPolicy) FormatterOption {
	return func(f *Formatter) {
		switch p {
		case ExcerptAlways, ExcerptIndividual, ExcerptNever:
			f.policy = p
		}
	}
}

// WithExcerptLength overrides the excerpt word count.
// Non-positive values are ignored.
func WithExcerptLength(words int) FormatterOption {
	return func(f *Formatter) {
		if words > 0 {
			f.excerptLength = words
		}
	}
}

// WithTransform appends a transform to the message pipeline. The first use
// replaces the default pipeline, so callers that want paragraph wrapping or
// shortcode expansion alongside their own transforms register those
// explicitly in the desired order.
func WithTransform(t Transform) FormatterOption {
	return func(f *Formatter) {
		if t != nil {
			f.transforms = append(f.transforms, t)
		}
	}
}

// WithShortcodes replaces the default pipeline with paragraph wrapping
// followed by expansion of the given shortcodes.
func WithShortcodes(shortcodes map[string]ShortcodeFunc) FormatterOption {
	return func(f *Formatter) {
		f.transforms = append(f.transforms, Paragraphs, ExpandShortcodes(shortcodes))
	}
}
