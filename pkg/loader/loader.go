// Package loader reads structured documents in whatever format the caller
// hands over (JSON, NDJSON, YAML, TOML) and decodes them into Go values.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for input that holds nothing but whitespace.
var ErrEmpty = errors.New("empty input")

// Format names a detected input format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

var (
	tomlSection  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// Detect guesses the format of input. Multi-document YAML is checked first,
// then NDJSON, then TOML (section headers look like JSON arrays), then JSON.
// Anything else is treated as YAML.
func Detect(input string) Format {
	input = strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(input, "---") || strings.Contains(input, "\n---"):
		return FormatYAML
	case looksLikeNDJSON(strings.Split(input, "\n")):
		return FormatNDJSON
	case looksLikeTOML(input):
		return FormatTOML
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		return FormatJSON
	default:
		return FormatYAML
	}
}

// LoadData parses input into one value per document. Single-document formats
// yield a slice of length one.
func LoadData(input string) ([]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmpty
	}

	switch Detect(input) {
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatTOML:
		var doc any
		if err := toml.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return []any{doc}, nil
	case FormatJSON:
		var doc any
		if err := json.Unmarshal([]byte(input), &doc); err != nil {
			// {key} is valid YAML flow syntax, give YAML a chance.
			return loadYAML(input)
		}
		return []any{doc}, nil
	default:
		return loadYAML(input)
	}
}

// Documents is the root LoadRoot returns for multi-document input. It is
// distinct from []any so a document that is itself a list stays a list.
type Documents []any

// LoadRoot parses input into a single root. Multi-document input comes back
// as Documents.
func LoadRoot(input string) (any, error) {
	docs, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return Documents(docs), nil
}

// LoadReader reads r to the end and parses it with LoadRoot.
func LoadReader(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return LoadRoot(string(data))
}

// LoadFile reads path and parses it with LoadRoot. A path of "-" reads stdin.
func LoadFile(path string) (any, error) {
	if path == "-" {
		return LoadReader(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadRoot(string(data))
}

// Decode converts a parsed root into out, honoring out's json tags. A root
// made of several mapping documents is merged first, later documents
// overriding earlier keys, so page data can be split across YAML documents
// or NDJSON lines.
func Decode(root any, out any) error {
	if docs, ok := root.(Documents); ok {
		if allMappings(docs) {
			root = mergeMappings(docs)
		} else {
			root = []any(docs)
		}
	}
	data, err := json.Marshal(normalize(root))
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// DecodeFile is LoadFile followed by Decode.
func DecodeFile(path string, out any) error {
	root, err := LoadFile(path)
	if err != nil {
		return err
	}
	return Decode(root, out)
}

// DecodeReader is LoadReader followed by Decode.
func DecodeReader(r io.Reader, out any) error {
	root, err := LoadReader(r)
	if err != nil {
		return err
	}
	return Decode(root, out)
}

func loadYAML(input string) ([]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in YAML input")
	}
	return docs, nil
}

// loadNDJSON keeps lines that are not JSON as plain strings.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	docs := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			docs = append(docs, line)
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return docs, nil
}

// looksLikeNDJSON wants several non-empty lines, most of them opening with
// '{' or '['. YAML lists of bare items must not qualify.
func looksLikeNDJSON(lines []string) bool {
	jsonLines, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonLines++
		}
	}
	return nonEmpty > 1 && jsonLines > nonEmpty/2
}

// looksLikeTOML accepts any section header, or a majority of key = value
// lines.
func looksLikeTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (nonEmpty > 0 && pairs > nonEmpty/2)
}

func allMappings(docs []any) bool {
	if len(docs) == 0 {
		return false
	}
	for _, d := range docs {
		if _, ok := normalize(d).(map[string]any); !ok {
			return false
		}
	}
	return true
}

func mergeMappings(docs []any) map[string]any {
	out := map[string]any{}
	for _, d := range docs {
		for k, v := range normalize(d).(map[string]any) {
			out[k] = v
		}
	}
	return out
}

// normalize rewrites the map[any]any values some YAML inputs produce into
// map[string]any so encoding/json accepts them.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
