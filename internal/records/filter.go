package records

import "strings"

// Filter is a conjunctive predicate over record fields. Zero-valued
// fields match everything.
type Filter struct {
	Area          string
	Status        string
	GunType       string
	NameSubstring string
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Area == "" && f.Status == "" && f.GunType == "" && f.NameSubstring == ""
}

// Match reports whether the record satisfies every specified predicate.
// Name matching is case-insensitive substring containment.
func (f Filter) Match(rec Record) bool {
	if f.Area != "" && rec.Area != f.Area {
		return false
	}
	if f.Status != "" && string(rec.Status) != f.Status {
		return false
	}
	if f.GunType != "" && rec.GunType != f.GunType {
		return false
	}
	if f.NameSubstring != "" {
		if !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(f.NameSubstring)) {
			return false
		}
	}
	return true
}

func applyFilter(recs []Record, f Filter) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
