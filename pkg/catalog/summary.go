package catalog

import (
	"github.com/jingkaihe/mcpadmin/pkg/config"
	"github.com/mitchellh/mapstructure"
)

// Summary is the typed view of the well-known definition fields, used only
// for display. Unknown fields stay in the raw definition and are ignored here.
type Summary struct {
	Type    string            `mapstructure:"type"`
	Command string            `mapstructure:"command"`
	URL     string            `mapstructure:"url"`
	Args    []string          `mapstructure:"args"`
	Env     map[string]string `mapstructure:"env"`
}

// Summarize decodes the display fields out of a raw definition. Fields with
// unexpected types are weakly coerced rather than failing; a definition the
// host tool would reject still renders.
func Summarize(def config.ServerDefinition) Summary {
	var summary Summary
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &summary,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return summary
	}
	_ = decoder.Decode(map[string]any(def))
	return summary
}

// Target returns the launch target for display: the command for stdio
// servers, the URL for remote ones.
func (s Summary) Target() string {
	if s.Command != "" {
		return s.Command
	}
	if s.URL != "" {
		return s.URL
	}
	return "(unknown)"
}

// TargetLabel returns the field label matching Target.
func (s Summary) TargetLabel() string {
	if s.Command == "" && s.URL != "" {
		return "url:"
	}
	return "command:"
}
