// Package probe finds the live storage target of a module among an ordered list
// of candidates and remembers the one that worked for the rest of the session.
package probe

import "github.com/agrox/fieldops/internal/backend"

// Absent marks a logical field that the candidate has no column for.
const Absent = "-"

// Record is one row in logical field names.
type Record map[string]any

// Candidate is one possible remote target with its field mapping.
// Fields maps logical names to remote names; unmapped fields keep their name.
type Candidate struct {
	Target string            `yaml:"target" json:"target"`
	Fields map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Remote returns the remote column for a logical field, false when the candidate lacks it.
func (c Candidate) Remote(logical string) (string, bool) {
	remote, ok := c.Fields[logical]
	if !ok {
		return logical, true
	}
	if remote == Absent || remote == "" {
		return "", false
	}
	return remote, true
}

// Columns maps logical fields to remote columns, dropping absent ones.
func (c Candidate) Columns(logical []string) []string {
	cols := make([]string, 0, len(logical))
	for _, f := range logical {
		if remote, ok := c.Remote(f); ok {
			cols = append(cols, remote)
		}
	}
	return cols
}

// ToRemote renames a record for insertion. Nil values and fields the candidate
// lacks are left out so remote defaults apply.
func (c Candidate) ToRemote(rec Record) backend.Row {
	row := make(backend.Row, len(rec))
	for k, v := range rec {
		if v == nil {
			continue
		}
		if remote, ok := c.Remote(k); ok {
			row[remote] = v
		}
	}
	return row
}

// FromRemote renames a remote row back to logical fields.
func (c Candidate) FromRemote(row backend.Row) Record {
	reverse := make(map[string]string, len(c.Fields))
	for logical, remote := range c.Fields {
		if remote != Absent && remote != "" {
			reverse[remote] = logical
		}
	}

	rec := make(Record, len(row))
	for k, v := range row {
		if logical, ok := reverse[k]; ok {
			rec[logical] = v
			continue
		}
		// a remote column named like a remapped logical field means something else
		if _, remapped := c.Fields[k]; remapped {
			continue
		}
		rec[k] = v
	}
	return rec
}

// Resource is a logical target (a module's table or bucket) with its candidates in try order.
type Resource struct {
	Name       string      `yaml:"name" json:"name"`
	Candidates []Candidate `yaml:"candidates" json:"candidates"`
}
