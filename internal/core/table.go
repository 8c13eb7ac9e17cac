package core

// Table is the loaded, typed, in-memory view of all records. It is
// read-only once built; the loader replaces it wholesale on refresh.
type Table struct {
	Records []Record

	// CoercedCells counts non-empty numeric cells that failed to parse
	// and were coerced to zero. Surfaced as a warning, never an error.
	CoercedCells int
}

// EmptyTable returns a table shaped with no records, used when the store
// is empty or a load degraded after a failure.
func EmptyTable() Table {
	return Table{Records: []Record{}}
}

func (t Table) Len() int {
	return len(t.Records)
}

// Clients returns the distinct client/project values in first-seen order,
// for populating filter controls.
func (t Table) Clients() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range t.Records {
		if _, ok := seen[r.Client]; ok {
			continue
		}
		seen[r.Client] = struct{}{}
		out = append(out, r.Client)
	}
	return out
}
