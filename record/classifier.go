package record

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/improveai/firehose-unpack/partition"
)

// Classified is one accepted record: its serialized payload (newline
// terminated, project_name removed) and the destination key it routes to.
type Classified struct {
	Key  string
	Data []byte
}

// Classifier turns raw record lines into classified records using the
// invocation's shared clock/id for key derivation. A Classifier never
// fails: a line that cannot be classified is logged and dropped.
type Classifier struct {
	inv partition.Invocation
}

func NewClassifier(inv partition.Invocation) *Classifier {
	return &Classifier{inv: inv}
}

// Classify parses and validates one raw line. The boolean is false when
// the line was dropped. Empty lines are dropped silently; every other
// drop is logged as a warning.
func (c *Classifier) Classify(line []byte) (Classified, bool) {
	if len(bytes.TrimSpace(line)) == 0 {
		return Classified{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		slog.Warn("dropping unparseable record", "error", err)
		return Classified{}, false
	}

	project, _ := stringField(fields, FieldProjectName)
	if project == "" {
		slog.Warn("dropping record with no project_name")
		return Classified{}, false
	}
	// the project is encoded in the destination key, never in the payload
	delete(fields, FieldProjectName)

	recordType, _ := stringField(fields, FieldType)
	if !validType(recordType) {
		slog.Warn("dropping record with invalid record_type", "record_type", recordType, "project", project)
		return Classified{}, false
	}

	var model string
	if typeUsesModel(recordType) {
		model, _ = stringField(fields, FieldModel)
		if model == "" {
			slog.Warn("dropping record with no model", "record_type", recordType, "project", project)
			return Classified{}, false
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		slog.Warn("dropping unserializable record", "project", project, "error", err)
		return Classified{}, false
	}
	data = append(data, '\n')

	return Classified{
		Key:  c.inv.Key(project, recordType, model),
		Data: data,
	}, true
}

// stringField extracts a string-valued field; a missing field, a null or
// a non-string value all report absent.
func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
