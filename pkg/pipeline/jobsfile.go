package pipeline

import (
	"fmt"
	"strings"
)

// JobsFile is the schema of a jobs YAML file. It lists assemblies
// selected for analysis with their download links.
//
//	assemblies:
//	  - id: ERZ1234567
//	    links:
//	      - label: Processed contigs
//	        url: https://example.org/ERZ1234567_FASTA.fasta.gz
type JobsFile struct {
	Assemblies []AssemblyEntry `yaml:"assemblies"`
}

// AssemblyEntry is one assembly of a jobs file.
type AssemblyEntry struct {
	ID    string `yaml:"id"`
	Links []Link `yaml:"links"`
}

// ValidationWarning is a non-fatal problem with a jobs file entry.
// Entries with warnings are skipped.
type ValidationWarning struct {
	Index   int
	ID      string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("entry %d (%s): %s", w.Index, w.ID, w.Message)
}

// Valid returns entries usable for a pipeline run and warnings for the
// rest. Empty IDs, duplicate IDs and entries without contigs are
// rejected.
func (f JobsFile) Valid() ([]AssemblyEntry, []ValidationWarning) {
	var res []AssemblyEntry
	var warns []ValidationWarning
	seen := make(map[string]struct{})

	for i, v := range f.Assemblies {
		id := strings.TrimSpace(v.ID)
		w := ValidationWarning{Index: i, ID: id}
		switch {
		case id == "":
			w.Message = "empty assembly id"
		case hasKey(seen, id):
			w.Message = "duplicate assembly id"
		case !hasLabel(v.Links, LabelContigs):
			w.Message = "no processed contigs link"
		}
		if w.Message != "" {
			warns = append(warns, w)
			continue
		}
		seen[id] = struct{}{}
		v.ID = id
		res = append(res, v)
	}
	return res, warns
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}

func hasLabel(links []Link, label string) bool {
	for _, v := range links {
		if NormalizeLabel(v.Label) == label && strings.TrimSpace(v.URL) != "" {
			return true
		}
	}
	return false
}
