package catalog

import "fmt"

// ServerNotFoundError means the named server has no catalog entry at all.
type ServerNotFoundError struct {
	Name string
}

func (e *ServerNotFoundError) Error() string {
	return fmt.Sprintf("MCP server %q not found in any project", e.Name)
}
