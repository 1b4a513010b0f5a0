package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/prdgraph/internal/knowledge"
)

// Parse validates an untrusted payload and decodes it into a Batch.
//
// raw may be JSON text ([]byte, string, json.RawMessage), an already
// decoded JSON value (map[string]any, []any) or any value that marshals to
// JSON. A bare array is read as the changes list. When validation fails the
// batch is nil and every problem is reported with its field path.
func Parse(raw any) (*Batch, []string) {
	tree, err := decodeInput(raw)
	if err != nil {
		return nil, []string{err.Error()}
	}

	var v validator
	obj := v.batch(tree)
	if len(v.errs) > 0 {
		return nil, v.errs
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, []string{fmt.Sprintf("batch: %v", err)}
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, []string{fmt.Sprintf("batch: %v", err)}
	}
	if b.Changes == nil {
		b.Changes = []Change{}
	}
	return &b, nil
}

func decodeInput(raw any) (any, error) {
	var text []byte
	switch in := raw.(type) {
	case nil:
		return nil, fmt.Errorf("batch: required")
	case map[string]any, []any:
		return in, nil
	case json.RawMessage:
		text = in
	case []byte:
		text = in
	case string:
		text = []byte(in)
	default:
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("batch: %v", err)
		}
		text = encoded
	}

	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil, fmt.Errorf("batch: required")
	}
	var tree any
	if err := json.Unmarshal(text, &tree); err != nil {
		return nil, fmt.Errorf("batch: invalid JSON: %v", err)
	}
	return tree, nil
}

// validator walks a decoded JSON tree and collects field-level problems.
type validator struct {
	errs []string
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) batch(tree any) map[string]any {
	if list, ok := tree.([]any); ok {
		tree = map[string]any{"changes": list}
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		v.fail("batch", "expected object, got %s", kindOf(tree))
		return nil
	}

	changes, ok := obj["changes"]
	switch {
	case !ok || changes == nil:
		v.fail("changes", "required")
	default:
		v.array("changes", changes, v.change)
	}
	if nodes, ok := obj["newNodes"]; ok && nodes != nil {
		v.array("newNodes", nodes, func(path string, item any) { v.draft(path, item, false) })
	}
	if cites, ok := obj["citations"]; ok && cites != nil {
		v.array("citations", cites, v.citation)
	}
	v.optionalString(obj, "", "narrative")
	return obj
}

func (v *validator) array(path string, value any, each func(string, any)) {
	list, ok := value.([]any)
	if !ok {
		v.fail(path, "expected array, got %s", kindOf(value))
		return
	}
	for i, item := range list {
		each(fmt.Sprintf("%s[%d]", path, i), item)
	}
}

func (v *validator) change(path string, item any) {
	obj, ok := item.(map[string]any)
	if !ok {
		v.fail(path, "expected object, got %s", kindOf(item))
		return
	}

	v.optionalString(obj, path, "id")
	if op, ok := v.requiredString(obj, path, "op"); ok && !validOp(Op(op)) {
		v.fail(path+".op", "must be one of %s", joinOps())
	}
	if et, ok := v.optionalString(obj, path, "edgeType"); ok && !knowledge.ValidEdgeType(knowledge.EdgeType(et)) {
		v.fail(path+".edgeType", "must be one of %s", joinEdgeTypes())
	}
	v.optionalString(obj, path, "fromId")
	v.optionalString(obj, path, "toId")
	v.optionalString(obj, path, "nodeId")
	if node, ok := obj["node"]; ok && node != nil {
		v.draft(path+".node", node, false)
	}
	if patch, ok := obj["patch"]; ok && patch != nil {
		v.draft(path+".patch", patch, true)
	}
}

// draft checks a node draft. Partial drafts (patches) have no required
// fields.
func (v *validator) draft(path string, item any, partial bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		v.fail(path, "expected object, got %s", kindOf(item))
		return
	}

	v.optionalString(obj, path, "id")
	var (
		typ     string
		present bool
	)
	if partial {
		typ, present = v.optionalString(obj, path, "type")
	} else {
		typ, present = v.requiredString(obj, path, "type")
		v.requiredString(obj, path, "title")
	}
	if present && !knowledge.ValidNodeType(knowledge.NodeType(typ)) {
		v.fail(path+".type", "must be one of %s", joinNodeTypes())
	}
	if partial {
		v.optionalString(obj, path, "title")
	}
	v.optionalString(obj, path, "description")
	v.optionalString(obj, path, "sourceSection")
	if data, ok := obj["data"]; ok && data != nil {
		if _, isObj := data.(map[string]any); !isObj {
			v.fail(path+".data", "expected object, got %s", kindOf(data))
		}
	}
	if tags, ok := obj["tags"]; ok && tags != nil {
		v.stringArray(path+".tags", tags)
	}
}

func (v *validator) citation(path string, item any) {
	obj, ok := item.(map[string]any)
	if !ok {
		v.fail(path, "expected object, got %s", kindOf(item))
		return
	}
	v.requiredString(obj, path, "changeId")
	ids, ok := obj["sourceNodeIds"]
	if !ok || ids == nil {
		v.fail(path+".sourceNodeIds", "required")
	} else {
		v.stringArray(path+".sourceNodeIds", ids)
	}
	v.optionalString(obj, path, "note")
}

func (v *validator) requiredString(obj map[string]any, path, key string) (string, bool) {
	value, ok := obj[key]
	if !ok || value == nil {
		v.fail(join(path, key), "required")
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		v.fail(join(path, key), "expected string, got %s", kindOf(value))
		return "", false
	}
	return s, true
}

// optionalString reports whether key holds a string. Absent and null
// values are accepted and report false.
func (v *validator) optionalString(obj map[string]any, path, key string) (string, bool) {
	value, ok := obj[key]
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		v.fail(join(path, key), "expected string, got %s", kindOf(value))
		return "", false
	}
	return s, true
}

func (v *validator) stringArray(path string, value any) {
	list, ok := value.([]any)
	if !ok {
		v.fail(path, "expected array, got %s", kindOf(value))
		return
	}
	for i, item := range list {
		if _, ok := item.(string); !ok {
			v.fail(fmt.Sprintf("%s[%d]", path, i), "expected string, got %s", kindOf(item))
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func validOp(op Op) bool {
	for _, o := range Ops() {
		if o == op {
			return true
		}
	}
	return false
}

func joinOps() string {
	names := make([]string, 0, 3)
	for _, o := range Ops() {
		names = append(names, string(o))
	}
	return strings.Join(names, ", ")
}

func joinNodeTypes() string {
	names := make([]string, 0, 9)
	for _, t := range knowledge.NodeTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func joinEdgeTypes() string {
	names := make([]string, 0, 6)
	for _, t := range knowledge.EdgeTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
