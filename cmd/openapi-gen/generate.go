package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calcserve/openapi-gen/discovery"
	"github.com/calcserve/openapi-gen/internal/fetch"
	"github.com/calcserve/openapi-gen/openapi"
)

var (
	source       string
	outPath      string
	specVersion  string
	docVersion   string
	serverURLs   []string
	alternatives string
	includeAsync bool
	includeAuth  bool
	authURL      string
	tokenURL     string
	docTitle     string
	fetchTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Translate a discovery document into an OpenAPI document",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		text, err := translate(ctx, source, cfg)
		if err != nil {
			return err
		}

		if outPath == "" {
			fmt.Print(text)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info().Str("path", outPath).Int("bytes", len(text)).Msg("OpenAPI document written")
		return nil
	},
}

// translate runs the load → decode → generate pipeline shared by generate
// and serve.
func translate(ctx context.Context, source string, cfg openapi.Config) (string, error) {
	raw, err := fetch.Load(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to load discovery document: %w", err)
	}

	doc, err := discovery.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode discovery document: %w", err)
	}

	text, err := openapi.New(cfg).Generate(doc)
	if err != nil {
		return "", fmt.Errorf("failed to generate OpenAPI document: %w", err)
	}
	return text, nil
}

// buildConfig validates the shared translation flags, applying OPENAPI_GEN_*
// environment fallbacks for flags that were not set explicitly.
func buildConfig(cmd *cobra.Command) (openapi.Config, error) {
	envFallback(cmd, "source", &source)
	envFallback(cmd, "auth-url", &authURL)
	envFallback(cmd, "token-url", &tokenURL)

	if source == "" {
		return openapi.Config{}, errors.New("--source is required (or set OPENAPI_GEN_SOURCE)")
	}

	var version openapi.Version
	switch specVersion {
	case string(openapi.V303):
		version = openapi.V303
	case string(openapi.V310):
		version = openapi.V310
	default:
		return openapi.Config{}, fmt.Errorf("invalid --spec-version %q (want %s or %s)", specVersion, openapi.V303, openapi.V310)
	}

	var alt openapi.Alternatives
	switch alternatives {
	case string(openapi.AnyOf):
		alt = openapi.AnyOf
	case string(openapi.OneOf):
		alt = openapi.OneOf
	default:
		return openapi.Config{}, fmt.Errorf("invalid --alternatives %q (want %s or %s)", alternatives, openapi.AnyOf, openapi.OneOf)
	}

	if includeAuth && (authURL == "" || tokenURL == "") {
		return openapi.Config{}, errors.New("--oauth requires --auth-url and --token-url")
	}

	return openapi.Config{
		SpecVersion:      version,
		Title:            docTitle,
		DocVersion:       docVersion,
		Servers:          serverURLs,
		Alternatives:     alt,
		IncludeAsync:     includeAsync,
		IncludeAuth:      includeAuth,
		AuthorizationURL: authURL,
		TokenURL:         tokenURL,
	}, nil
}

func envFallback(cmd *cobra.Command, flag string, value *string) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(flag) {
		*value = viper.GetString(flag)
	}
}

// addConfigFlags registers the translation flags shared by generate and
// serve.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&source, "source", "s", "", "Discovery document path or URL")
	f.StringVar(&specVersion, "spec-version", string(openapi.V303), "Target OpenAPI version (3.0.3 or 3.1.0)")
	f.StringVar(&docVersion, "doc-version", "", "Version string for the generated document's info block")
	f.StringVar(&docTitle, "title", "", "Title for the generated document's info block")
	f.StringArrayVar(&serverURLs, "server", nil, "Server URL to advertise (repeatable)")
	f.StringVar(&alternatives, "alternatives", string(openapi.AnyOf), "Alternatives keyword for heterogeneous arrays (anyOf or oneOf)")
	f.BoolVar(&includeAsync, "async", false, "Include the asynchronous request-lifecycle endpoints")
	f.BoolVar(&includeAuth, "oauth", false, "Include an OAuth2 security scheme")
	f.StringVar(&authURL, "auth-url", "", "OAuth2 authorization URL")
	f.StringVar(&tokenURL, "token-url", "", "OAuth2 token URL")
	f.DurationVar(&fetchTimeout, "fetch-timeout", 30*time.Second, "Timeout for fetching the discovery document")
}

func init() {
	addConfigFlags(generateCmd)
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(generateCmd)
}
