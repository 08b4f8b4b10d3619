// Command revapi runs a two-archive-set API comparison from the command
// line: the two positional arguments are the old and new primary
// archives, --config loads a YAML file of extension configuration, and
// --old-supplementary/--new-supplementary attach dependency archives
// used only to resolve references.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mkavanagh/revapi"
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi"
	"github.com/mkavanagh/revapi/logging"
	"github.com/mkavanagh/revapi/message"
	"github.com/mkavanagh/revapi/registry"
	"github.com/mkavanagh/revapi/reporter"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	configPath       string
	oldSupplementary []string
	newSupplementary []string
	checkPlugins     []string
	logLevel         string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revapi <old-archive> <new-archive>",
		Short: "Compare two versions of an API and report the differences",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	cmd.Flags().StringArrayVar(&oldSupplementary, "old-supplementary", nil, "supplementary archive for the old API (repeatable)")
	cmd.Flags().StringArrayVar(&newSupplementary, "new-supplementary", nil, "supplementary archive for the new API (repeatable)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringArrayVar(&checkPlugins, "check-plugin", nil, "name=path of an external check plugin binary (repeatable)")
	return cmd
}

// fileConfig is the YAML shape --config loads: a flat property map
// handed straight into config.Configuration.
type fileConfig struct {
	Properties map[string]string `yaml:"properties"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logging.SetGlobal(logger)
	defer logging.Sync()

	properties := map[string]string{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		properties = fc.Properties
	}

	pluginPaths, pluginNames, err := parseCheckPlugins(checkPlugins)
	if err != nil {
		return err
	}
	if len(pluginNames) > 0 {
		properties["additionalChecks"] = strings.Join(pluginNames, ",")
	}

	locale := message.LocaleFromEnvironment()
	if locale == language.Und {
		locale = language.AmericanEnglish
	}
	cfg := config.New(locale, properties)

	fs := afs.New()
	oldAPI := api.NewAPI(
		archivesFor(fs, args[0]),
		archivesFor(fs, oldSupplementary...),
	)
	newAPI := api.NewAPI(
		archivesFor(fs, args[1]),
		archivesFor(fs, newSupplementary...),
	)

	goAnalyzer := goapi.NewAnalyzer()
	if len(pluginPaths) > 0 {
		goAnalyzer = goAnalyzer.WithRegistry(registry.NewPluginRegistry(pluginPaths))
	}

	pipeline := revapi.NewBuilder().
		WithAnalyzers(goAnalyzer).
		WithReporters(reporter.NewTextReporter(os.Stdout)).
		Build()

	ctx := context.Background()
	results, err := pipeline.Analyze(ctx, cfg, oldAPI, newAPI)
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			logging.Error("analyzer failed", zap.Int("analyzer", r.AnalyzerIndex), zap.Error(r.Err))
		}
	}
	if failed {
		return fmt.Errorf("one or more analyzers failed")
	}
	return nil
}

// parseCheckPlugins splits each --check-plugin value into a name and an
// executable path, returning the path map registry.NewPluginRegistry
// wants and the plain name list stored in the "additionalChecks"
// property.
func parseCheckPlugins(specs []string) (map[string]string, []string, error) {
	paths := make(map[string]string, len(specs))
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || name == "" || path == "" {
			return nil, nil, fmt.Errorf("--check-plugin must be name=path, got %q", spec)
		}
		paths[name] = path
		names = append(names, name)
	}
	return paths, names, nil
}

func archivesFor(fs afs.Service, paths ...string) []api.Archive {
	archives := make([]api.Archive, 0, len(paths))
	for _, p := range paths {
		archives = append(archives, api.NewFileArchive(p, fs))
	}
	return archives
}
