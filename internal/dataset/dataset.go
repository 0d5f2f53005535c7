// Package dataset loads the career survey into typed records and target labels.
package dataset

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"careerpath/adapters/excel"
	"careerpath/domain/survey"
	"careerpath/internal/errors"
)

// Target is the survey question holding the career label
const Target = "What would you like to become when you grow up"

// Ignored columns are present in the survey export but carry no signal
var Ignored = []string{"Favorite Color", "Birth Month"}

// Column binds one survey question to a Record field
type Column struct {
	Name     string
	Encoding *survey.Encoding // nil for plain numeric questions
	get      func(*survey.Record) *float64
}

// Columns lists the feature questions in dataset order
var Columns = []Column{
	{Name: "Preferred Work Environment", Encoding: &survey.WorkEnvironment, get: func(r *survey.Record) *float64 { return &r.WorkEnvironment }},
	{Name: "Risk-Taking Ability", get: func(r *survey.Record) *float64 { return &r.RiskTaking }},
	{Name: "Age", get: func(r *survey.Record) *float64 { return &r.Age }},
	{Name: "Financial Stability - self/family (1 is low income and 10 is high income)", get: func(r *survey.Record) *float64 { return &r.FinancialStability }},
	{Name: "Preferred Subjects in Highschool/College", Encoding: &survey.Subject, get: func(r *survey.Record) *float64 { return &r.Subject }},
	{Name: "Number of Siblings", get: func(r *survey.Record) *float64 { return &r.Siblings }},
	{Name: "Participation in Extracurricular Activities", Encoding: &survey.Extracurricular, get: func(r *survey.Record) *float64 { return &r.Extracurricular }},
	{Name: "Preferred Music Genre", Encoding: &survey.MusicGenre, get: func(r *survey.Record) *float64 { return &r.MusicGenre }},
	{Name: "Leadership Experience", get: func(r *survey.Record) *float64 { return &r.Leadership }},
	{Name: "Tech-Savviness", Encoding: &survey.TechSavviness, get: func(r *survey.Record) *float64 { return &r.TechSavviness }},
	{Name: "Motivation for Career Choice", Encoding: &survey.Motivation, get: func(r *survey.Record) *float64 { return &r.Motivation }},
	{Name: "Academic Performance (CGPA/Percentage)", get: func(r *survey.Record) *float64 { return &r.AcademicPerformance }},
	{Name: "Daily Water Intake (in Litres)", get: func(r *survey.Record) *float64 { return &r.WaterIntake }},
}

// Value returns the column's value in a record
func (c Column) Value(rec survey.Record) float64 {
	return *c.get(&rec)
}

// Dataset is the loaded survey
type Dataset struct {
	Source  string
	Records []survey.Record
	Targets []string
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Load reads a CSV or XLSX survey file
func Load(path string) (*Dataset, error) {
	data, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		return nil, err
	}
	ds, err := FromExcel(data)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// FromExcel converts raw rows into records. Missing columns are reported all at
// once; the first malformed or out-of-range row aborts the load.
func FromExcel(data *excel.ExcelData) (*Dataset, error) {
	start := time.Now()

	if missing := missingColumns(data); len(missing) > 0 {
		return nil, errors.MissingColumns(missing)
	}

	ds := &Dataset{
		Records: make([]survey.Record, 0, len(data.Rows)),
		Targets: make([]string, 0, len(data.Rows)),
	}
	for i, row := range data.Rows {
		// header is line 1
		line := i + 2
		rec, err := parseRow(row)
		if err != nil {
			return nil, errors.WithCode(errors.CodeDatasetInvalid, errors.Wrapf(err, "row %d", line))
		}
		target := strings.TrimSpace(row[Target])
		if target == "" {
			return nil, errors.DatasetInvalid(fmt.Sprintf("row %d: empty target label", line))
		}
		ds.Records = append(ds.Records, rec)
		ds.Targets = append(ds.Targets, target)
	}

	if ds.Len() == 0 {
		return nil, errors.DatasetInvalid("dataset has no rows")
	}

	log.Printf("[Dataset] Parsed %d rows in %.2fms (ignored columns: %s)",
		ds.Len(), float64(time.Since(start).Nanoseconds())/1e6, strings.Join(ignoredPresent(data), ", "))
	return ds, nil
}

func missingColumns(data *excel.ExcelData) []string {
	var missing []string
	for _, col := range Columns {
		if !data.HasColumn(col.Name) {
			missing = append(missing, col.Name)
		}
	}
	if !data.HasColumn(Target) {
		missing = append(missing, Target)
	}
	return missing
}

func ignoredPresent(data *excel.ExcelData) []string {
	var present []string
	for _, name := range Ignored {
		if data.HasColumn(name) {
			present = append(present, name)
		}
	}
	return present
}

func parseRow(row excel.RawRowData) (survey.Record, error) {
	var rec survey.Record
	for _, col := range Columns {
		v, err := parseCell(col, row[col.Name])
		if err != nil {
			return survey.Record{}, err
		}
		*col.get(&rec) = v
	}
	if err := rec.Validate(); err != nil {
		return survey.Record{}, err
	}
	return rec, nil
}

// parseCell accepts a number, or the option text for categorical columns
func parseCell(col Column, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.DatasetInvalid(fmt.Sprintf("%q is empty", col.Name))
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}
	if col.Encoding != nil {
		if code, ok := col.Encoding.Code(raw); ok {
			return code, nil
		}
		return 0, errors.DatasetInvalid(fmt.Sprintf("%q: unknown option %q (want one of %s)",
			col.Name, raw, strings.Join(col.Encoding.Labels(), ", ")))
	}
	return 0, errors.DatasetInvalid(fmt.Sprintf("%q: %q is not a number", col.Name, raw))
}

// ToExcel renders a dataset with encoded categories, the layout of the balanced survey export
func ToExcel(ds *Dataset) *excel.ExcelData {
	headers := make([]string, 0, len(Columns)+1)
	for _, col := range Columns {
		headers = append(headers, col.Name)
	}
	headers = append(headers, Target)

	rows := make([]excel.RawRowData, ds.Len())
	for i, rec := range ds.Records {
		row := make(excel.RawRowData, len(headers))
		for _, col := range Columns {
			row[col.Name] = strconv.FormatFloat(col.Value(rec), 'f', -1, 64)
		}
		row[Target] = ds.Targets[i]
		rows[i] = row
	}
	return &excel.ExcelData{Headers: headers, Rows: rows}
}
