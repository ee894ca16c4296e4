package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
	"go.uber.org/multierr"
)

// DateLayout is the calendar-date format used by the dataset for
// Issue_Date, Expiry_Date, and DOB.
const DateLayout = "2006-01-02"

// Columns is the required header, in the order exports reproduce it.
var Columns = []string{
	"Name",
	"License_No",
	"Area",
	"Police_Station",
	"Address",
	"Gun_Type",
	"Weapon_Model",
	"Issue_Date",
	"Expiry_Date",
	"Status",
	"Mobile",
	"Gender",
	"DOB",
	"Remarks",
}

// ReadRecords parses a CSV source into license records. The header must
// contain every required column (extra columns are ignored). Row errors
// are collected so a malformed upload reports every offending line at
// once; any row error fails the whole read.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source is empty, header row required")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read header row")
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	var missing []string
	for _, name := range Columns {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source is missing required columns").
			WithDetails(map[string]any{"missing_columns": missing})
	}

	var (
		recs    []Record
		rowErrs []error
		line    = 1
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		rec, err := parseRow(row, colIndex)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		recs = append(recs, rec)
	}

	if combined := multierr.Combine(rowErrs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "source contains malformed rows").
			WithDetails(map[string]any{"row_errors": len(rowErrs)})
	}
	return recs, nil
}

func parseRow(row []string, colIndex map[string]int) (Record, error) {
	field := func(name string) string {
		idx := colIndex[name]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	status, ok := ParseStatus(field("Status"))
	if !ok {
		return Record{}, fmt.Errorf("unknown status %q", field("Status"))
	}

	issued, err := time.Parse(DateLayout, field("Issue_Date"))
	if err != nil {
		return Record{}, fmt.Errorf("invalid Issue_Date %q", field("Issue_Date"))
	}
	expiry, err := time.Parse(DateLayout, field("Expiry_Date"))
	if err != nil {
		return Record{}, fmt.Errorf("invalid Expiry_Date %q", field("Expiry_Date"))
	}
	dob, err := time.Parse(DateLayout, field("DOB"))
	if err != nil {
		return Record{}, fmt.Errorf("invalid DOB %q", field("DOB"))
	}
	if expiry.Before(issued) {
		return Record{}, fmt.Errorf("license %s expires %s before issue %s",
			field("License_No"), field("Expiry_Date"), field("Issue_Date"))
	}

	return Record{
		Name:          field("Name"),
		LicenseNo:     field("License_No"),
		Area:          field("Area"),
		PoliceStation: field("Police_Station"),
		Address:       field("Address"),
		GunType:       field("Gun_Type"),
		WeaponModel:   field("Weapon_Model"),
		IssueDate:     issued,
		ExpiryDate:    expiry,
		Status:        status,
		Mobile:        field("Mobile"),
		Gender:        field("Gender"),
		DOB:           dob,
		Remarks:       field("Remarks"),
	}, nil
}

// WriteRecords serializes records back to the input schema, same column
// order and names, so an exported view reloads into an equivalent store.
func WriteRecords(w io.Writer, recs []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header row")
	}
	for _, rec := range recs {
		row := []string{
			rec.Name,
			rec.LicenseNo,
			rec.Area,
			rec.PoliceStation,
			rec.Address,
			rec.GunType,
			rec.WeaponModel,
			rec.IssueDate.Format(DateLayout),
			rec.ExpiryDate.Format(DateLayout),
			string(rec.Status),
			rec.Mobile,
			rec.Gender,
			rec.DOB.Format(DateLayout),
			rec.Remarks,
		}
		if err := writer.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write record row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}
