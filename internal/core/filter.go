package core

// Filter narrows a set of records before aggregation or export. The empty
// string is the "all" sentinel for the equality criteria, and a zero From
// date disables the range criterion. Criteria combine with logical AND.
type Filter struct {
	Client   string
	Category string
	Status   string
	From     Date // inclusive lower bound on the record date
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.Client == "" && f.Category == "" && f.Status == "" && f.From.IsNull()
}

// Apply returns the records matching every set criterion. Records with a
// null date always fail a From criterion. The input is never mutated.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Client != "" && r.Client != f.Client {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if !f.From.IsNull() {
			if r.Date.IsNull() || r.Date.Before(f.From.Time) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
