package openapi

import (
	"strconv"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/calcserve/openapi-gen/discovery"
	"github.com/calcserve/openapi-gen/internal/textwriter"
)

// Generate translates one discovery document into a complete OpenAPI YAML
// document. The translation is a pure function of the document and the
// generator's config: repeated calls produce byte-identical output. A nil
// document fails immediately; any failure deeper in the recursion aborts the
// whole call with no partial text.
func (g *Generator) Generate(doc *discovery.Document) (string, error) {
	if doc == nil {
		return "", ErrInvalidDocument
	}

	w := textwriter.New()

	g.writeHeader(w)
	g.writeServers(w)
	if err := g.writePaths(w, doc); err != nil {
		return "", err
	}
	g.writeComponents(w)
	if g.cfg.IncludeAuth {
		g.writeSecurity(w)
	}

	return w.String(), nil
}

func (g *Generator) writeHeader(w *textwriter.Writer) {
	w.WriteLine("openapi: " + string(g.cfg.SpecVersion))
	w.WriteLine("info:")
	w.Push(2)
	w.WriteLine("title: " + quote(g.cfg.Title))
	w.WriteLine("version: " + quote(g.cfg.DocVersion))
	w.Pop()
}

func (g *Generator) writeServers(w *textwriter.Writer) {
	w.WriteLine("servers:")
	w.Push(2)
	for _, url := range g.cfg.Servers {
		w.WriteLine("- url: " + quote(url))
	}
	w.Pop()
}

func (g *Generator) writePaths(w *textwriter.Writer, doc *discovery.Document) error {
	total := 0
	for _, archive := range doc.Archives {
		total += len(archive.Functions)
	}
	if total == 0 && !g.cfg.IncludeAsync {
		w.WriteLine("paths: {}")
		return nil
	}

	w.WriteLine("paths:")
	w.Push(2)
	for _, archive := range doc.Archives {
		for _, fn := range archive.Functions {
			if err := g.writeFunctionPath(w, archive, fn); err != nil {
				return err
			}
		}
	}
	if g.cfg.IncludeAsync {
		g.writeAsyncPaths(w)
	}
	w.Pop()
	return nil
}

// writeFunctionPath emits one path item with a post operation for the
// synchronous interface of a single function.
func (g *Generator) writeFunctionPath(w *textwriter.Writer, archive *discovery.Archive, fn *discovery.Function) error {
	w.WriteLine("/" + archive.Name + "/" + fn.Name + ":")
	w.Push(2)
	w.WriteLine("post:")
	w.Push(2)

	w.WriteLine("operationId: " + operationID(archive.Name, fn.Name))
	w.WriteLine("summary: " + quote(functionSummary(archive, fn)))
	if fn.Help != "" {
		writeTextBlock(w, "description", fn.Help)
	}

	if g.cfg.IncludeAsync {
		w.WriteLine("parameters:")
		w.Push(2)
		w.WriteLine("- $ref: '#/components/parameters/mode'")
		w.WriteLine("- $ref: '#/components/parameters/client'")
		w.Pop()
	}

	w.WriteLine("requestBody:")
	w.Push(2)
	w.WriteLine("required: true")
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: object")
	w.WriteLine("properties:")
	w.Push(2)
	w.WriteLine("nargout:")
	w.Push(2)
	w.WriteLine("type: integer")
	w.WriteLine("description: Number of output values the caller wants back")
	w.Pop()
	w.WriteLine("rhs:")
	w.Push(2)
	w.WriteLine("description: Input arguments in positional order")
	if err := g.writeSignatureArray(w, archive, fn.Inputs); err != nil {
		return err
	}
	w.Pop()
	w.Pop()
	w.WriteLine("required:")
	w.Push(2)
	w.WriteLine("- rhs")
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()

	w.WriteLine("responses:")
	w.Push(2)
	w.WriteLine("'200':")
	w.Push(2)
	w.WriteLine("description: " + quote("Result of invoking "+fn.Name))
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("type: object")
	w.WriteLine("properties:")
	w.Push(2)
	w.WriteLine("lhs:")
	w.Push(2)
	w.WriteLine("description: Output values in positional order")
	if err := g.writeSignatureArray(w, archive, fn.Outputs); err != nil {
		return err
	}
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
	g.writeErrorResponse(w)
	w.Pop()

	w.Pop()
	w.Pop()
	return nil
}

// writeSignatureArray emits the version-dependent schema of an ordered
// argument array. 3.0.3 approximates positional typing with an alternatives
// group plus a maximum-count bound; 3.1.0 types each position directly and
// forbids items past the declared prefix. A trailing variadic marker
// suppresses the bound in both encodings.
func (g *Generator) writeSignatureArray(w *textwriter.Writer, archive *discovery.Archive, values []*discovery.Value) error {
	w.WriteLine("type: array")

	if len(values) == 0 {
		// 3.0.x requires items on every array schema, so an empty signature
		// still carries a permissive item schema alongside the zero bound.
		w.WriteLine("items: {}")
		w.WriteLine("maxItems: 0")
		return nil
	}
	variadic := values[len(values)-1].Variadic

	switch g.cfg.SpecVersion {
	case V310:
		w.WriteLine("prefixItems:")
		w.Push(2)
		for _, v := range values {
			if err := g.writeSequenceItem(w, archive, v, map[string]bool{}); err != nil {
				return err
			}
		}
		w.Pop()
		if !variadic {
			w.WriteLine("items: false")
		}

	default:
		w.WriteLine("items:")
		w.Push(2)
		w.WriteLine(string(g.cfg.Alternatives) + ":")
		w.Push(2)
		for _, v := range values {
			if err := g.writeSequenceItem(w, archive, v, map[string]bool{}); err != nil {
				return err
			}
		}
		w.Pop()
		w.Pop()
		if !variadic {
			w.WriteLine("maxItems: " + strconv.Itoa(len(values)))
		}
	}

	return nil
}

// writeErrorResponse emits the default error response, shared by every
// operation through the ErrorResponse component.
func (g *Generator) writeErrorResponse(w *textwriter.Writer) {
	w.WriteLine("default:")
	w.Push(2)
	w.WriteLine("description: Error report for a failed invocation")
	w.WriteLine("content:")
	w.Push(2)
	w.WriteLine("application/json:")
	w.Push(2)
	w.WriteLine("schema:")
	w.Push(2)
	w.WriteLine("$ref: '#/components/schemas/ErrorResponse'")
	w.Pop()
	w.Pop()
	w.Pop()
	w.Pop()
}

func (g *Generator) writeComponents(w *textwriter.Writer) {
	w.WriteLine("components:")
	w.Push(2)

	w.WriteLine("schemas:")
	w.Push(2)
	g.writeErrorResponseSchema(w)
	if g.cfg.IncludeAsync {
		g.writeAsyncRequestInfoSchema(w)
	}
	w.Pop()

	if g.cfg.IncludeAsync {
		g.writeSharedParameters(w)
	}

	if g.cfg.IncludeAuth {
		w.WriteLine("securitySchemes:")
		w.Push(2)
		w.WriteLine("OAuth2:")
		w.Push(2)
		w.WriteLine("type: oauth2")
		w.WriteLine("flows:")
		w.Push(2)
		w.WriteLine("authorizationCode:")
		w.Push(2)
		w.WriteLine("authorizationUrl: " + quote(g.cfg.AuthorizationURL))
		w.WriteLine("tokenUrl: " + quote(g.cfg.TokenURL))
		w.WriteLine("scopes: {}")
		w.Pop()
		w.Pop()
		w.Pop()
		w.Pop()
	}

	w.Pop()
}

func (g *Generator) writeErrorResponseSchema(w *textwriter.Writer) {
	w.WriteLine("ErrorResponse:")
	w.Push(2)
	w.WriteLine("type: object")
	w.WriteLine("description: Error report for a failed or rejected invocation")
	w.WriteLine("properties:")
	w.Push(2)
	w.WriteLine("error:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("description: Human-readable error message")
	w.Pop()
	w.WriteLine("id:")
	w.Push(2)
	w.WriteLine("type: string")
	w.WriteLine("description: Identifier of the failed request, when one was assigned")
	w.Pop()
	w.Pop()
	w.WriteLine("required:")
	w.Push(2)
	w.WriteLine("- error")
	w.Pop()
	w.Pop()
}

func (g *Generator) writeSecurity(w *textwriter.Writer) {
	w.WriteLine("security:")
	w.Push(2)
	w.WriteLine("- OAuth2: []")
	w.Pop()
}

// writeTextBlock emits free text as a quoted scalar, or as a literal block
// when it spans lines.
func writeTextBlock(w *textwriter.Writer, key, text string) {
	if !strings.Contains(text, "\n") {
		w.WriteLine(key + ": " + quote(text))
		return
	}
	w.WriteLine(key + ": |-")
	w.Push(2)
	for _, line := range strings.Split(text, "\n") {
		w.WriteLine(strings.TrimRight(line, " \t"))
	}
	w.Pop()
}

func functionSummary(archive *discovery.Archive, fn *discovery.Function) string {
	if line := firstLine(fn.Help); line != "" {
		return line
	}
	return "Invoke " + fn.Name + " from archive " + archive.Name
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func operationID(archive, function string) string {
	return strcase.LowerCamelCase(archive + "_" + function)
}
