// Command wikipath finds shortest click paths between encyclopedia articles,
// either through a wikipath server or locally against a graph dump file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wikipath/wikipath/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:3030"

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitNoPath = 2
)

var (
	apiClient     *client.Client
	flagURL       string
	flagKey       string
	flagFmt       string
	flagGraphFile string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("wikipath version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("wikipath version %s-dev", version)
}

type configFile struct {
	// Flat format
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wikipath",
		Short:   "wikipath: shortest click paths between articles",
		Version: versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flagFmt {
			case formatJSONName, formatTableName, formatQuietName:
			default:
				return fmt.Errorf("unknown --format %q (want json, table or quiet)", flagFmt)
			}
			resolveConfig()
			var opts []client.Option
			if flagKey != "" {
				opts = append(opts, client.WithAPIKey(flagKey))
			}
			apiClient = client.New(flagURL, opts...)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "wikipath server URL (env: WIKIPATH_URL)")
	rootCmd.PersistentFlags().StringVar(&flagKey, "api-key", "", "admin API key for import (env: WIKIPATH_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", formatJSONName, "Output format: json|table|quiet")
	rootCmd.PersistentFlags().StringVar(&flagGraphFile, "graph-file", "", "search a local graph dump instead of a server")

	rootCmd.AddCommand(newSingleCmd())
	rootCmd.AddCommand(newMultiCmd())
	rootCmd.AddCommand(newArticleCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

// execute runs the CLI with args and returns the process exit code. Errors
// are reported on stderr.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNoPath):
		fmt.Fprintln(stderr, err)
		return exitNoPath
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("WIKIPATH_URL"); v != "" {
			flagURL = v
		}
	}
	if flagKey == "" {
		flagKey = os.Getenv("WIKIPATH_API_KEY")
	}

	// Try config file for any remaining defaults.
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".wikipath", "config.yaml")
	data, err := os.ReadFile(cfgPath) //nolint:gosec // fixed location under the user's home.
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	// Resolve from profiles if available, fall back to flat format
	resolvedURL := cfg.URL
	resolvedKey := cfg.APIKey
	if cfg.Profiles != nil {
		profileName := cfg.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := cfg.Profiles[profileName]; ok {
			if p.URL != "" {
				resolvedURL = p.URL
			}
			if p.APIKey != "" {
				resolvedKey = p.APIKey
			}
		}
	}
	if flagURL == defaultURL && resolvedURL != "" {
		flagURL = resolvedURL
	}
	if flagKey == "" && resolvedKey != "" {
		flagKey = resolvedKey
	}
}
