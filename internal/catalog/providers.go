/*
PURPOSE:
  Provider families used by the catalog filter and the display labels.

REQUIREMENTS:
  User-specified:
  - --google, --anthropic, --mistral, --deepseek select by identifier prefix.

  Implementation-discovered:
  - ProviderLabel must answer for any provider tag the gateway reports.

SELF-HEALING INSTRUCTIONS:
  - New family: add its prefixes here and a flag in internal/cli/run.go.
*/

package catalog

import "sort"

// familyPrefixes maps a filter token to the identifier prefixes it selects.
var familyPrefixes = map[string][]string{
	"google":    {"gemini", "imagen", "veo"},
	"anthropic": {"claude"},
	"mistral":   {"mistral", "magistral", "pixtral", "codestral"},
	"deepseek":  {"deepseek"},
	"meta":      {"llama"},
	"ollama":    {"ollama"},
}

// Families lists the known filter tokens, sorted.
func Families() []string {
	out := make([]string, 0, len(familyPrefixes))
	for k := range familyPrefixes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ProviderLabel returns the display marker for a provider tag.
// Unknown providers get the neutral marker.
func ProviderLabel(provider string) string {
	switch provider {
	case "google":
		return "🔵"
	case "anthropic":
		return "🟠"
	case "mistral":
		return "🔴"
	case "deepseek":
		return "🟣"
	case "ollama":
		return "⚫"
	default:
		return "⚪"
	}
}
