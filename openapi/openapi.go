// Package openapi translates a discovery document into an OpenAPI schema
// document, rendered as YAML text. Two target schema versions are supported;
// they differ only in how ordered, possibly-heterogeneous argument arrays are
// encoded (anyOf/oneOf alternatives for 3.0.3, prefixItems for 3.1.0).
package openapi

import (
	"errors"
	"strings"
)

// Version selects the target OpenAPI specification version.
type Version string

const (
	V303 Version = "3.0.3"
	V310 Version = "3.1.0"
)

// Alternatives selects the keyword used for heterogeneous array member
// schemas in 3.0.3 documents.
type Alternatives string

const (
	AnyOf Alternatives = "anyOf"
	OneOf Alternatives = "oneOf"
)

var (
	// ErrInvalidDocument is returned when the input is not a structured
	// discovery document. It is the only condition checked before
	// translation starts.
	ErrInvalidDocument = errors.New("openapi: input is not a structured discovery document")

	// ErrCyclicTypedef is returned when a typedef directly or indirectly
	// contains itself. Expanding such a graph would never terminate.
	ErrCyclicTypedef = errors.New("openapi: cyclic typedef reference")
)

// Defaults applied by New for zero-valued Config fields.
const (
	defaultTitle      = "Function Execution API"
	defaultDocVersion = "1.0.0"
	defaultServerURL  = "http://localhost:9910"
)

// Config controls one translation. All fields are optional; zero values fall
// back to the defaults above.
type Config struct {
	// SpecVersion is the target OpenAPI version, V303 or V310.
	SpecVersion Version

	// Title and DocVersion populate the info block. DocVersion is an opaque
	// passthrough describing the deployed archives, not this tool.
	Title      string
	DocVersion string

	// Servers lists the base URLs of the execution server.
	Servers []string

	// Alternatives picks anyOf or oneOf semantics for heterogeneous arrays
	// in 3.0.3 documents. Ignored for 3.1.0.
	Alternatives Alternatives

	// IncludeAsync adds the fixed bank of asynchronous request-lifecycle
	// endpoints and their shared components.
	IncludeAsync bool

	// IncludeAuth adds an OAuth2 authorization-code security scheme using
	// AuthorizationURL and TokenURL, applied document-wide.
	IncludeAuth      bool
	AuthorizationURL string
	TokenURL         string
}

// Generator translates discovery documents according to one Config. It holds
// no per-call state; a single Generator may be shared, but each Generate call
// uses its own emitter.
type Generator struct {
	cfg Config
}

// New returns a Generator with defaults applied.
func New(cfg Config) *Generator {
	if cfg.SpecVersion == "" {
		cfg.SpecVersion = V303
	}
	if cfg.Alternatives == "" {
		cfg.Alternatives = AnyOf
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.DocVersion == "" {
		cfg.DocVersion = defaultDocVersion
	}
	if len(cfg.Servers) == 0 {
		cfg.Servers = []string{defaultServerURL}
	}
	return &Generator{cfg: cfg}
}

// quote renders s as a single-quoted YAML scalar.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// keyLine renders name as a YAML mapping key, quoting it when it is not a
// safe plain scalar.
func keyLine(name string) string {
	if plainKey(name) {
		return name + ":"
	}
	return quote(name) + ":"
}

func plainKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
