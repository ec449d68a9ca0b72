// Package dialog holds the transcript data model, the per-line classification
// rule, and loading of transcript files.
package dialog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Record is one dialog from a transcript file.
type Record struct {
	ID    string   `json:"dialog_id,omitempty"`
	Lines []string `json:"full_dialog"`
}

// UnmarshalJSON accepts dialog_id as either a string or a number. Generators
// that key dialogs by row number emit the latter.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    any      `json:"dialog_id"`
		Lines []string `json:"full_dialog"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch id := raw.ID.(type) {
	case nil:
		r.ID = ""
	case string:
		r.ID = id
	case float64:
		r.ID = strconv.FormatFloat(id, 'f', -1, 64)
	case bool:
		r.ID = strconv.FormatBool(id)
	default:
		return fmt.Errorf("dialog_id: unsupported type %T", raw.ID)
	}

	r.Lines = raw.Lines
	return nil
}

// Title returns the dialog_id, falling back to the record's 1-based position
// in the source list when the id is absent.
func (r Record) Title(index int) string {
	if r.ID != "" {
		return r.ID
	}
	return "#" + strconv.Itoa(index+1)
}

// Classified returns every line of the record run through Classify, in order.
func (r Record) Classified() []Line {
	lines := make([]Line, len(r.Lines))
	for i, raw := range r.Lines {
		lines[i] = Classify(raw)
	}
	return lines
}

// Collection is the ordered list of dialogs loaded from one transcript file.
// It is never mutated after load.
type Collection []Record

// Len returns the number of dialogs.
func (c Collection) Len() int {
	return len(c)
}

// At returns the record at index and whether the index is in range.
func (c Collection) At(index int) (Record, bool) {
	if index < 0 || index >= len(c) {
		return Record{}, false
	}
	return c[index], true
}

// Decode reads a transcript document. A JSON null decodes to an empty
// collection.
func Decode(r io.Reader) (Collection, error) {
	var c Collection
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode dialogs: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Summary is the listing view of one record.
type Summary struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Lines  int    `json:"lines"`
	Images int    `json:"images"`
}

// Summarize counts the lines and sticker lines of the record at index.
func (r Record) Summarize(index int) Summary {
	s := Summary{Index: index, ID: r.ID, Title: r.Title(index), Lines: len(r.Lines)}
	for _, line := range r.Classified() {
		if line.IsImage() {
			s.Images++
		}
	}
	return s
}

// Summaries summarizes every record in order.
func (c Collection) Summaries() []Summary {
	out := make([]Summary, len(c))
	for i, r := range c {
		out[i] = r.Summarize(i)
	}
	return out
}
