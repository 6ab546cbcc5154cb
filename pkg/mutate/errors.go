package mutate

import (
	"fmt"
	"strings"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
)

// NoMatchError means the --from pattern matched none of the server's sources.
type NoMatchError struct {
	Name    string
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no source for %q matches %q", e.Name, e.Pattern)
}

// AmbiguousSourceError means source resolution needs disambiguation: either
// --from matched more than one source, or it was omitted while the server has
// several. Candidates lists every source the user can pass to --from.
type AmbiguousSourceError struct {
	Name       string
	Pattern    string
	Candidates []catalog.SourceID
}

func (e *AmbiguousSourceError) Error() string {
	sources := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		sources[i] = c.String()
	}
	if e.Pattern != "" {
		return fmt.Sprintf("--from %q matches multiple sources for %q: %s",
			e.Pattern, e.Name, strings.Join(sources, ", "))
	}
	return fmt.Sprintf("multiple sources define %q, use --from to pick one of: %s",
		e.Name, strings.Join(sources, ", "))
}
