package tasksfilestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
	"gopkg.in/yaml.v3"
)

// recordKeys are the exact, case-sensitive keys of every stored record.
var recordKeys = []string{"title", "description", "category", "completed"}

// record is the on-disk shape of one task. Pointer fields let decoding tell a
// missing or null key apart from a zero value.
type record struct {
	Title       *string `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
	Category    *string `json:"category" yaml:"category"`
	Completed   *bool   `json:"completed" yaml:"completed"`
}

func encodeRecords(tasks []tasksrepo.Task) []record {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{
			Title:       &t.Title,
			Description: &t.Description,
			Category:    &t.Category,
			Completed:   &t.Completed,
		}
	}
	return records
}

func decodeRecords(records []record) ([]tasksrepo.Task, error) {
	tasks := make([]tasksrepo.Task, len(records))
	for i, r := range records {
		var missing []string
		if r.Title == nil {
			missing = append(missing, "title")
		}
		if r.Description == nil {
			missing = append(missing, "description")
		}
		if r.Category == nil {
			missing = append(missing, "category")
		}
		if r.Completed == nil {
			missing = append(missing, "completed")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("record %d: missing or null %s", i, strings.Join(missing, ", "))
		}

		tasks[i] = tasksrepo.Task{
			Title:       *r.Title,
			Description: *r.Description,
			Category:    *r.Category,
			Completed:   *r.Completed,
		}
	}
	return tasks, nil
}

// checkKeys requires the key set of one record to be exactly recordKeys.
func checkKeys[V any](fields map[string]V) error {
	var missing, unknown []string
	for _, k := range recordKeys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range fields {
		if !slices.Contains(recordKeys, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)

	switch {
	case len(missing) > 0:
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	case len(unknown) > 0:
		return fmt.Errorf("unknown key %s", strings.Join(unknown, ", "))
	}
	return nil
}

// codec converts between file bytes and records.
type codec interface {
	marshal(records []record) ([]byte, error)
	unmarshal(data []byte) ([]record, error)
}

// codecFor picks the encoding from the file extension; JSON unless the path
// ends in .yaml or .yml.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) marshal(records []record) ([]byte, error) {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// unmarshal walks the token stream so that duplicate keys and keys that
// differ only in case are rejected instead of silently merged.
func (jsonCodec) unmarshal(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("top level is not a list: %w", err)
	}
	records := []record{}
	for dec.More() {
		r, err := jsonRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, r)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing content after task list")
	}
	return records, nil
}

func jsonRecord(dec *json.Decoder) (record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return record{}, fmt.Errorf("not an object: %w", err)
	}
	fields := make(map[string]json.RawMessage, len(recordKeys))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return record{}, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return record{}, err
		}
		if _, dup := fields[key]; dup {
			return record{}, fmt.Errorf("duplicate key %q", key)
		}
		fields[key] = raw
	}
	if err := expectDelim(dec, '}'); err != nil {
		return record{}, err
	}
	if err := checkKeys(fields); err != nil {
		return record{}, err
	}

	var r record
	values := []struct {
		key string
		dst any
	}{
		{"title", &r.Title},
		{"description", &r.Description},
		{"category", &r.Category},
		{"completed", &r.Completed},
	}
	for _, v := range values {
		if err := json.Unmarshal(fields[v.key], v.dst); err != nil {
			return record{}, fmt.Errorf("%s: %w", v.key, err)
		}
	}
	return r, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("want %v, got %v", want, tok)
	}
	return nil
}

type yamlCodec struct{}

func (yamlCodec) marshal(records []record) ([]byte, error) {
	if len(records) == 0 {
		return []byte("[]\n"), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshal works on the node tree so that every value must carry the tag
// of its field; yaml.v3 would otherwise turn a number or null into a string.
func (yamlCodec) unmarshal(data []byte) ([]record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errors.New("trailing document after task list")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, errors.New("top level is not a list")
	}

	items := doc.Content[0].Content
	records := make([]record, 0, len(items))
	for i, item := range items {
		r, err := yamlRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func yamlRecord(n *yaml.Node) (record, error) {
	if n.Kind != yaml.MappingNode {
		return record{}, errors.New("not a mapping")
	}
	fields := make(map[string]*yaml.Node, len(recordKeys))
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
			return record{}, fmt.Errorf("line %d: key is not a string", k.Line)
		}
		if _, dup := fields[k.Value]; dup {
			return record{}, fmt.Errorf("duplicate key %q", k.Value)
		}
		fields[k.Value] = v
	}
	if err := checkKeys(fields); err != nil {
		return record{}, err
	}

	var (
		r   record
		err error
	)
	if r.Title, err = yamlScalar[string](fields["title"], "!!str"); err != nil {
		return record{}, fmt.Errorf("title: %w", err)
	}
	if r.Description, err = yamlScalar[string](fields["description"], "!!str"); err != nil {
		return record{}, fmt.Errorf("description: %w", err)
	}
	if r.Category, err = yamlScalar[string](fields["category"], "!!str"); err != nil {
		return record{}, fmt.Errorf("category: %w", err)
	}
	if r.Completed, err = yamlScalar[bool](fields["completed"], "!!bool"); err != nil {
		return record{}, fmt.Errorf("completed: %w", err)
	}
	return r, nil
}

func yamlScalar[T any](n *yaml.Node, tag string) (*T, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tag {
		return nil, fmt.Errorf("line %d: want %s, got %s", n.Line, tag, n.ShortTag())
	}
	var v T
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
