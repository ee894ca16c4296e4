package records

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
)

const sampleCSV = `Name,License_No,Area,Police_Station,Address,Gun_Type,Weapon_Model,Issue_Date,Expiry_Date,Status,Mobile,Gender,DOB,Remarks
Ravi Kumar,WL-2023-0001,Kolar Road,Kolar Road Police Station,12 Lake View,Pistol,IOF .32,2023-01-10,2028-01-09,Active,9876500000,Male,1979-03-15,
Sita Devi,WL-2023-0002,MP Nagar,MP Nagar Police Station,44 Zone II,Rifle,SBBL 12G,2022-06-01,2027-05-31,Submitted,9876500001,Female,1990-07-20,Weapon with police
Arjun Singh,WL-2023-0003,Kolar Road,Kolar Road Police Station,7 Danish Hills,Revolver,Webley MkIV,2019-02-14,2024-02-13,Expired,9876500002,Male,1962-11-02,Renewal pending
Meena Sharma,WL-2023-0004,Arera Colony,Arera Colony Police Station,E5/21,Pistol,Glock 17,2021-09-30,2026-09-29,Active,9876500003,Female,2001-01-05,
`

func newLoadedStore(t *testing.T, strict bool) *Store {
	t.Helper()
	store := NewStore(strict)
	if err := store.LoadReader(strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("load sample data: %v", err)
	}
	return store
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	store := newLoadedStore(t, false)

	all := store.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 records, got %d", len(all))
	}
	want := []string{"WL-2023-0001", "WL-2023-0002", "WL-2023-0003", "WL-2023-0004"}
	for i, licenseNo := range want {
		if all[i].LicenseNo != licenseNo {
			t.Fatalf("position %d: expected %s got %s", i, licenseNo, all[i].LicenseNo)
		}
	}
}

func TestLoadFileMissingIsNotFound(t *testing.T) {
	store := NewStore(false)
	err := store.LoadFile(filepath.Join(t.TempDir(), "no_such_file.csv"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store should stay empty after failed load, got %d records", store.Len())
	}
}

func TestLoadMissingColumnsFails(t *testing.T) {
	store := NewStore(false)
	err := store.LoadReader(strings.NewReader("Name,Area\nRavi,Kolar Road\n"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestLoadMalformedRowsFailAndKeepOldTable(t *testing.T) {
	store := newLoadedStore(t, false)

	bad := strings.Join(Columns, ",") + "\n" +
		"X,WL-9,A,PS,Addr,Pistol,M,2023-01-01,2022-01-01,Active,99,Male,1980-01-01,\n" + // expiry before issue
		"Y,WL-10,A,PS,Addr,Pistol,M,2023-01-01,2028-01-01,Lost,99,Male,1980-01-01,\n" // unknown status
	err := store.LoadReader(strings.NewReader(bad))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if store.Len() != 4 {
		t.Fatalf("failed load must not replace the table; got %d records", store.Len())
	}
}

func TestFindMissingIsEmptyResultNotError(t *testing.T) {
	store := newLoadedStore(t, false)
	if _, ok := store.Find("WL-0000-9999"); ok {
		t.Fatal("expected miss for unknown license")
	}
	rec, ok := store.Find("WL-2023-0002")
	if !ok || rec.Name != "Sita Devi" {
		t.Fatalf("unexpected find result: %+v ok=%v", rec, ok)
	}
}

func TestUpdateStatusRoundTrip(t *testing.T) {
	store := newLoadedStore(t, false)

	rec, err := store.UpdateStatus("WL-2023-0001", ActionSubmit)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Status != StatusSubmitted {
		t.Fatalf("expected Submitted, got %s", rec.Status)
	}

	rec, err = store.UpdateStatus("WL-2023-0001", ActionReturn)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if rec.Status != StatusActive {
		t.Fatalf("expected Active after round trip, got %s", rec.Status)
	}

	// a second return from Active must fail, not no-op
	_, err = store.UpdateStatus("WL-2023-0001", ActionReturn)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	store := newLoadedStore(t, false)

	for _, action := range []Action{ActionSubmit, ActionReturn} {
		if _, err := store.UpdateStatus("WL-2023-0003", action); !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
			t.Fatalf("action %s on Expired license: expected STATE_CONFLICT, got %v", action, err)
		}
	}
	if rec, _ := store.Find("WL-2023-0003"); rec.Status != StatusExpired {
		t.Fatalf("rejected update must not mutate; got %s", rec.Status)
	}
}

func TestUpdateStatusUnknownLicense(t *testing.T) {
	store := newLoadedStore(t, false)
	_, err := store.UpdateStatus("WL-0000-9999", ActionSubmit)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func duplicateRows() []Record {
	issue := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := issue.AddDate(5, 0, 0)
	dob := time.Date(1980, 5, 5, 0, 0, 0, 0, time.UTC)
	mk := func(status Status) Record {
		return Record{
			Name: "Dup Holder", LicenseNo: "WL-DUP-1", Area: "MP Nagar",
			IssueDate: issue, ExpiryDate: expiry, DOB: dob, Status: status,
		}
	}
	return []Record{mk(StatusActive), mk(StatusActive)}
}

func TestUpdateStatusDuplicateKeyUpdatesAllMatches(t *testing.T) {
	store := NewStore(false)
	store.Replace(duplicateRows())

	if dups := store.DuplicateKeys(); len(dups) != 1 || dups[0] != "WL-DUP-1" {
		t.Fatalf("expected duplicate key report, got %v", dups)
	}

	if _, err := store.UpdateStatus("WL-DUP-1", ActionSubmit); err != nil {
		t.Fatalf("submit duplicates: %v", err)
	}
	for i, rec := range store.All() {
		if rec.Status != StatusSubmitted {
			t.Fatalf("row %d: expected every match updated, got %s", i, rec.Status)
		}
	}
}

func TestUpdateStatusDuplicateKeyStrictMode(t *testing.T) {
	store := NewStore(true)
	store.Replace(duplicateRows())

	_, err := store.UpdateStatus("WL-DUP-1", ActionSubmit)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT in strict mode, got %v", err)
	}
	for i, rec := range store.All() {
		if rec.Status != StatusActive {
			t.Fatalf("row %d: strict rejection must not mutate, got %s", i, rec.Status)
		}
	}
}

func TestUpdateStatusDuplicateKeyMixedStatesAllOrNothing(t *testing.T) {
	rows := duplicateRows()
	rows[1].Status = StatusSubmitted
	store := NewStore(false)
	store.Replace(rows)

	_, err := store.UpdateStatus("WL-DUP-1", ActionSubmit)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT for mixed duplicate states, got %v", err)
	}
	all := store.All()
	if all[0].Status != StatusActive || all[1].Status != StatusSubmitted {
		t.Fatalf("partial mutation detected: %s/%s", all[0].Status, all[1].Status)
	}
}
