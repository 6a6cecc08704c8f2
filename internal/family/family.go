package family

import "strings"

// Model identifiers are free-form strings, so family resolution is
// heuristic. The matcher prefers false positives (treating unrelated models
// as overlapping) over false negatives, because silently letting a model
// review its own output defeats the point of cross-model review.

// baseNames are known model-name prefixes, longest first so that e.g.
// "gpt-4o" resolves before a shorter accidental match.
var baseNames = []string{
	"deepseek",
	"command",
	"mixtral",
	"mistral",
	"claude",
	"gemini",
	"llama",
	"grok",
	"qwen",
	"gpt",
	"phi",
	"o1",
	"o3",
	"o4",
}

// providers maps known provider tokens to a canonical provider name.
// Tokens are matched by containment against the full identifier.
var providers = map[string]string{
	"anthropic": "anthropic",
	"claude":    "anthropic",
	"openai":    "openai",
	"gpt":       "openai",
	"chatgpt":   "openai",
	"google":    "google",
	"gemini":    "google",
	"deepmind":  "google",
	"meta":      "meta",
	"llama":     "meta",
	"mistral":   "mistral",
	"microsoft": "microsoft",
	"phi":       "microsoft",
	"amazon":    "amazon",
	"titan":     "amazon",
	"cohere":    "cohere",
	"command":   "cohere",
	"xai":       "xai",
	"grok":      "xai",
	"deepseek":  "deepseek",
	"qwen":      "alibaba",
	"alibaba":   "alibaba",
}

// providerOrder fixes the containment-check order so that resolution is
// deterministic. More specific tokens come before generic ones.
var providerOrder = []string{
	"anthropic", "claude",
	"openai", "chatgpt", "gpt",
	"deepmind", "google", "gemini",
	"meta", "llama",
	"mistral",
	"microsoft", "phi",
	"amazon", "titan",
	"cohere", "command",
	"xai", "grok",
	"deepseek",
	"alibaba", "qwen",
}

// Overlap reports whether two model identifiers likely share a vendor or
// base architecture and therefore must not appear as generator and reviewer
// of the same artifact. Comparison is case-insensitive.
func Overlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	// Base-name prefixes are conclusive in both directions: two identifiers
	// with known but different base names are distinct families even if a
	// weaker heuristic below would disagree.
	baseA, okA := baseName(a)
	baseB, okB := baseName(b)
	if okA && okB {
		return baseA == baseB
	}

	provA := Provider(a)
	provB := Provider(b)
	if provA != "" && provB != "" && provA == provB {
		return true
	}

	return sharesToken(a, b)
}

// baseName extracts the leading model-name token, if the identifier starts
// with a known prefix.
func baseName(id string) (string, bool) {
	for _, name := range baseNames {
		if strings.HasPrefix(id, name) {
			return name, true
		}
	}
	return "", false
}

// Provider resolves the canonical provider name for a model identifier, or
// "" when no known provider token appears in it.
func Provider(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	for _, token := range providerOrder {
		if strings.Contains(id, token) {
			return providers[token]
		}
	}
	return ""
}

// sharesToken tokenizes both identifiers into alphabetic runs of length >= 4
// and reports whether any token appears verbatim in both. The length floor
// keeps empty and noise tokens from matching each other.
func sharesToken(a, b string) bool {
	ta := alphaTokens(a)
	if len(ta) == 0 {
		return false
	}
	for tok := range alphaTokens(b) {
		if ta[tok] {
			return true
		}
	}
	return false
}

func alphaTokens(id string) map[string]bool {
	tokens := make(map[string]bool)
	start := -1
	for i, r := range id {
		if r >= 'a' && r <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= 4 {
			tokens[id[start:i]] = true
		}
		start = -1
	}
	if start >= 0 && len(id)-start >= 4 {
		tokens[id[start:]] = true
	}
	return tokens
}
