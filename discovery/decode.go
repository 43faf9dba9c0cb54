package discovery

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrInvalidDocument is returned when the top level of the input is not a
// JSON object. It is the only input-shape condition Decode rejects; anything
// structurally present below the top level is trusted.
var ErrInvalidDocument = errors.New("discovery document is not a JSON object")

// Reserved trailing descriptor names marking variadic slots.
const (
	variadicInputName  = "varargin"
	variadicOutputName = "varargout"
)

type wireValue struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    []int  `json:"size"`
	Typedef string `json:"typedef"`
	Help    string `json:"help"`
}

type wireFunction struct {
	Inputs  []wireValue `json:"inputs"`
	Outputs []wireValue `json:"outputs"`
	Help    string      `json:"help"`
}

type wireTypedef struct {
	Fields   []wireValue `json:"fields"`
	Elements []wireValue `json:"elements"`
}

// Decode parses a discovery document. Archives, functions, and typedefs keep
// the key order of the JSON text, which is why the object containers are
// walked token by token instead of being unmarshaled into maps.
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectObjectStart(dec); err != nil {
		return nil, err
	}

	doc := &Document{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "archives":
			if err := decodeArchives(dec, doc); err != nil {
				return nil, err
			}
		default:
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
	}

	if err := endObject(dec); err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeArchives(dec *json.Decoder, doc *Document) error {
	if err := expectObjectStart(dec); err != nil {
		return err
	}

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}

		archive, err := decodeArchive(dec, name)
		if err != nil {
			return err
		}
		doc.Archives = append(doc.Archives, archive)
	}

	return endObject(dec)
}

func decodeArchive(dec *json.Decoder, name string) (*Archive, error) {
	if err := expectObjectStart(dec); err != nil {
		return nil, fmt.Errorf("archive %q: %w", name, err)
	}

	archive := &Archive{Name: name}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "functions":
			if err := decodeFunctions(dec, archive); err != nil {
				return nil, err
			}
		case "typedefs":
			if err := decodeTypedefs(dec, archive); err != nil {
				return nil, err
			}
		default:
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
	}

	return archive, endObject(dec)
}

func decodeFunctions(dec *json.Decoder, archive *Archive) error {
	if err := expectObjectStart(dec); err != nil {
		return fmt.Errorf("archive %q functions: %w", archive.Name, err)
	}

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}

		var wf wireFunction
		if err := dec.Decode(&wf); err != nil {
			return fmt.Errorf("decode function %q: %w", name, err)
		}

		archive.Functions = append(archive.Functions, &Function{
			Name:    name,
			Inputs:  convertValues(wf.Inputs, variadicInputName),
			Outputs: convertValues(wf.Outputs, variadicOutputName),
			Help:    wf.Help,
		})
	}

	return endObject(dec)
}

func decodeTypedefs(dec *json.Decoder, archive *Archive) error {
	if err := expectObjectStart(dec); err != nil {
		return fmt.Errorf("archive %q typedefs: %w", archive.Name, err)
	}

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}

		var wt wireTypedef
		if err := dec.Decode(&wt); err != nil {
			return fmt.Errorf("decode typedef %q: %w", name, err)
		}

		td := &Typedef{Name: name}
		if wt.Fields != nil {
			td.Fields = convertValues(wt.Fields, "")
		}
		if wt.Elements != nil {
			td.Elements = convertValues(wt.Elements, "")
		}
		archive.Typedefs = append(archive.Typedefs, td)
	}

	return endObject(dec)
}

// convertValues turns wire descriptors into model values, flagging a trailing
// descriptor that carries the reserved variadic marker name.
func convertValues(vals []wireValue, marker string) []*Value {
	out := make([]*Value, len(vals))
	for i, v := range vals {
		val := &Value{
			Name:    v.Name,
			Type:    ParseType(v.Type),
			Size:    v.Size,
			Typedef: v.Typedef,
			Help:    v.Help,
		}
		if marker != "" && i == len(vals)-1 && v.Name == marker {
			val.Variadic = true
		}
		out[i] = val
	}
	return out
}

func expectObjectStart(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode discovery: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidDocument
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode discovery: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("decode discovery: unexpected token %v", tok)
	}
	return key, nil
}

func endObject(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode discovery: %w", err)
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode discovery: %w", err)
	}
	return nil
}
