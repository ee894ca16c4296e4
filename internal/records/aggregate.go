package records

import (
	"sort"
	"time"
)

// CountRow is one key/count pair in an aggregation, in first-encountered
// insertion order unless ranked by TopK.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountBy groups records by the given key function, preserving the order
// keys are first encountered.
func CountBy(recs []Record, key func(Record) string) []CountRow {
	position := map[string]int{}
	var rows []CountRow
	for _, rec := range recs {
		k := key(rec)
		if idx, ok := position[k]; ok {
			rows[idx].Count++
			continue
		}
		position[k] = len(rows)
		rows = append(rows, CountRow{Key: k, Count: 1})
	}
	return rows
}

func ByStatus(rec Record) string { return string(rec.Status) }

func ByArea(rec Record) string { return rec.Area }

func ByGunType(rec Record) string { return rec.GunType }

func ByGender(rec Record) string { return rec.Gender }

// TopK returns the k highest counts, ties broken by first-encountered
// insertion order. k <= 0 or k beyond the row count returns everything.
func TopK(rows []CountRow, k int) []CountRow {
	ranked := make([]CountRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// Age is the whole number of years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// AgeBucketLabels is the fixed histogram order.
var AgeBucketLabels = []string{"21-30", "31-40", "41-50", "51-60", "60+"}

// AgeBucket classifies an age into its histogram bucket. Holders under
// 21 fall outside every bucket and are excluded from the age histogram
// by policy; the second return is false for them. Ages above 60 land in
// the 60+ bucket.
func AgeBucket(age int) (string, bool) {
	switch {
	case age < 21:
		return "", false
	case age <= 30:
		return "21-30", true
	case age <= 40:
		return "31-40", true
	case age <= 50:
		return "41-50", true
	case age <= 60:
		return "51-60", true
	default:
		return "60+", true
	}
}

// AgeGroups builds the zero-filled age histogram for the given records.
func AgeGroups(recs []Record, now time.Time) []CountRow {
	counts := map[string]int{}
	for _, rec := range recs {
		if bucket, ok := AgeBucket(Age(rec.DOB, now)); ok {
			counts[bucket]++
		}
	}
	rows := make([]CountRow, len(AgeBucketLabels))
	for i, label := range AgeBucketLabels {
		rows[i] = CountRow{Key: label, Count: counts[label]}
	}
	return rows
}
