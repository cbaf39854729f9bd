package lexicon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"tangutlex/internal/core/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names an on-disk dataset syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DetectFormat picks a format from the file extension. Unknown extensions are
// read as JSON, which is how the vocabulary is usually distributed (often
// under a .txt name).
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a format name from configuration.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.CodeValidationError, fmt.Sprintf("unsupported dataset format %q", name))
	}
}

// record is one raw dataset record keyed by lower-cased field name. A nil
// record marks a list element that was not a mapping.
type record map[string]interface{}

// listKeys are accepted as the wrapper key when the top level is a mapping.
var listKeys = []string{"entries", "entry", "records"}

func decodeRecords(data []byte, format Format) ([]record, error) {
	var (
		raw interface{}
		err error
	)

	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
		if err == nil {
			if _, tokErr := dec.Token(); tokErr != io.EOF {
				err = fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
			}
		}
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		var doc map[string]interface{}
		_, err = toml.Decode(string(data), &doc)
		raw = doc
	default:
		return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("unsupported dataset format %q", format))
	}
	if err != nil {
		return nil, errors.AddContext(errors.DataFormat(err, "decode dataset"), errors.CtxFormat, string(format))
	}

	items, ok := asList(raw)
	if !ok {
		if m, isMap := asMap(raw); isMap {
			for _, key := range listKeys {
				if items, ok = asList(lookupFold(m, key)); ok {
					break
				}
			}
		}
	}
	if !ok {
		return nil, errors.AddContext(
			errors.New(errors.CodeDataFormat, fmt.Sprintf("top level is %s, expected a list of records", describe(raw))),
			errors.CtxFormat, string(format),
		)
	}

	records := make([]record, len(items))
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		rec := make(record, len(m))
		for k, v := range m {
			rec[strings.ToLower(strings.TrimSpace(k))] = v
		}
		records[i] = rec
	}
	return records, nil
}

func asList(v interface{}) ([]interface{}, bool) {
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []map[string]interface{}:
		out := make([]interface{}, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// asMap accepts string-keyed mappings and the interface-keyed ones YAML
// produces when any key is not a string.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func lookupFold(m map[string]interface{}, key string) interface{} {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return m[k]
		}
	}
	return nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "empty"
	case map[string]interface{}, map[interface{}]interface{}:
		return "a mapping without an entries list"
	case string:
		return "a string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// first returns the value of the first alias present in rec.
func (rec record) first(aliases ...string) (interface{}, bool) {
	for _, a := range aliases {
		if v, ok := rec[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// text returns the scalar value of the first present alias as a trimmed string.
func (rec record) text(aliases ...string) string {
	v, ok := rec.first(aliases...)
	if !ok {
		return ""
	}
	return scalarString(v)
}

// texts collects every string found under the given aliases, flattening lists.
func (rec record) texts(aliases ...string) []string {
	var out []string
	for _, a := range aliases {
		switch v := rec[a].(type) {
		case nil:
		case []interface{}:
			for _, item := range v {
				out = append(out, scalarString(item))
			}
		case []string:
			for _, item := range v {
				out = append(out, strings.TrimSpace(item))
			}
		default:
			out = append(out, scalarString(v))
		}
	}
	return out
}

func scalarString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
