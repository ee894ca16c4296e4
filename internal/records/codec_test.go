package records

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestExportImportRoundTrip(t *testing.T) {
	store := newLoadedStore(t, false)
	original := store.All()

	var buf bytes.Buffer
	if err := WriteRecords(&buf, original); err != nil {
		t.Fatalf("export: %v", err)
	}

	reloaded := NewStore(false)
	if err := reloaded.LoadReader(&buf); err != nil {
		t.Fatalf("reload export: %v", err)
	}

	restored := reloaded.All()
	if len(restored) != len(original) {
		t.Fatalf("expected %d records, got %d", len(original), len(restored))
	}
	for i := range original {
		if original[i] != restored[i] {
			t.Fatalf("record %d differs after round trip:\n was %+v\n got %+v", i, original[i], restored[i])
		}
	}
}

func TestExportHeaderMatchesInputSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, nil); err != nil {
		t.Fatalf("export empty: %v", err)
	}
	header := strings.TrimSpace(buf.String())
	if header != strings.Join(Columns, ",") {
		t.Fatalf("unexpected header %q", header)
	}
}

func TestReadRecordsIgnoresExtraColumns(t *testing.T) {
	src := "Extra," + strings.Join(Columns, ",") + "\n" +
		"x,Ravi Kumar,WL-1,Kolar Road,PS,Addr,Pistol,IOF .32,2023-01-10,2028-01-09,Active,9876500000,Male,1979-03-15,ok\n"
	recs, err := ReadRecords(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 || recs[0].LicenseNo != "WL-1" || recs[0].Remarks != "ok" {
		t.Fatalf("unexpected parse %+v", recs)
	}
}

func TestReadRecordsEmptySource(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestReadRecordsCollectsEveryRowError(t *testing.T) {
	src := strings.Join(Columns, ",") + "\n" +
		"A,WL-1,Area,PS,Addr,Pistol,M,2023-13-40,2028-01-01,Active,99,Male,1980-01-01,\n" +
		"B,WL-2,Area,PS,Addr,Pistol,M,2023-01-01,2028-01-01,Misplaced,99,Male,1980-01-01,\n"
	_, err := ReadRecords(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected combined row errors")
	}
	cause := errors.Unwrap(err)
	if cause == nil {
		t.Fatalf("expected wrapped row errors, got %v", err)
	}
	msg := cause.Error()
	for _, frag := range []string{"line 2", "line 3"} {
		if !strings.Contains(msg, frag) {
			t.Fatalf("expected %q in error, got %q", frag, msg)
		}
	}
	if got := len(multierr.Errors(cause)); got != 2 {
		t.Fatalf("expected 2 row errors, got %d", got)
	}
}
