package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
	"github.com/jingkaihe/mcpadmin/pkg/config"
	"github.com/jingkaihe/mcpadmin/pkg/logger"
)

// workingDir resolves the current project root.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine working directory")
	}
	return cwd, nil
}

// loadWorkspace reads every configuration source and builds the catalog plus
// a resolver for the current working directory.
func loadWorkspace(ctx context.Context) (*catalog.Catalog, *catalog.Resolver, string, error) {
	cwd, err := workingDir()
	if err != nil {
		return nil, nil, "", err
	}

	logger.G(ctx).WithField("cwd", cwd).Debug("loading configuration sources")
	sources, err := config.Load(cwd)
	if err != nil {
		return nil, nil, "", err
	}
	logger.G(ctx).WithFields(map[string]any{
		"global": sources.GlobalPath,
		"locals": len(sources.Locals),
	}).Debug("configuration sources loaded")

	cat := catalog.Build(sources)
	return cat, catalog.NewResolver(cat, cwd), cwd, nil
}

// shortenPath replaces a home directory prefix with ~ for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// displaySource renders a SourceID with a shortened project path.
func displaySource(source catalog.SourceID) string {
	return fmt.Sprintf("%s/%s", source.Scope, shortenPath(source.Project))
}
