package naming

// Default templates applied when the user leaves a kind unset.
const (
	DefaultChunk = "[name]-[hash].[ext]"
	DefaultAsset = "[name]-[hash].[ext]"
	DefaultEntry = "[dir]/[name]-[hash].[ext]"
)

// Spec is the user-supplied naming configuration. It is either the string
// form (built with StringSpec; the per-kind fields are ignored) or the
// object form (any subset of Chunk, Entry, Asset). The zero Spec means "no
// naming configured".
type Spec struct {
	Template string
	Chunk    string
	Entry    string
	Asset    string

	isString bool
}

// StringSpec returns the string form of tmpl. An empty tmpl is still the
// string form: it becomes the entry template as is.
func StringSpec(tmpl string) Spec {
	return Spec{Template: tmpl, isString: true}
}

// IsString reports whether s uses the single-template form.
func (s Spec) IsString() bool { return s.isString }

// Templates is the complete per-kind template set after resolution.
type Templates struct {
	Chunk string
	Entry string
	Asset string
}

// Resolve normalizes s into a complete template set. It never fails.
//
//   - string form: the template becomes Entry; Chunk and Asset take defaults.
//   - object form: each field falls back to its own default independently.
//   - zero Spec: all three defaults.
func Resolve(s Spec) Templates {
	if s.IsString() {
		return Templates{
			Chunk: DefaultChunk,
			Entry: s.Template,
			Asset: DefaultAsset,
		}
	}
	return Templates{
		Chunk: orDefault(s.Chunk, DefaultChunk),
		Entry: orDefault(s.Entry, DefaultEntry),
		Asset: orDefault(s.Asset, DefaultAsset),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
