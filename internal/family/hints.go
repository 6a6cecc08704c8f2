package family

// defaultHints spans the three major families, used when the generation
// model's provider is unknown.
var defaultHints = []string{"claude", "gpt", "gemini"}

// hintsByProvider maps a generation model's provider to reviewer families
// from other vendors.
var hintsByProvider = map[string][]string{
	"anthropic": {"gpt", "gemini"},
	"openai":    {"claude", "gemini"},
	"google":    {"claude", "gpt"},
	"meta":      {"claude", "gpt", "gemini"},
	"mistral":   {"claude", "gpt", "gemini"},
	"microsoft": {"claude", "gemini"},
	"amazon":    {"claude", "gpt", "gemini"},
	"cohere":    {"claude", "gpt", "gemini"},
	"xai":       {"claude", "gpt", "gemini"},
	"deepseek":  {"claude", "gpt", "gemini"},
	"alibaba":   {"claude", "gpt", "gemini"},
}

// FallbackHints returns a short ordered list of model family names to steer
// reviewer selection away from the generation model's family. The result is
// a copy; callers may mutate it.
func FallbackHints(generationModel string) []string {
	hints := defaultHints
	if prov := Provider(generationModel); prov != "" {
		if h, ok := hintsByProvider[prov]; ok {
			hints = h
		}
	}
	out := make([]string, len(hints))
	copy(out, hints)
	return out
}
