package excel

import (
	"encoding/csv"
	"log"
	"os"

	"careerpath/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteData writes headers and rows to a CSV or XLSX file chosen by extension
func WriteData(filePath string, data *ExcelData) error {
	switch fileTypeOf(filePath) {
	case "csv":
		return writeCSV(filePath, data)
	default:
		return writeExcel(filePath, data)
	}
}

func writeCSV(filePath string, data *ExcelData) error {
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, "failed to create CSV file")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(data.Headers); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, row := range data.Rows {
		if err := w.Write(rowValues(data.Headers, row)); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV file")
	}
	log.Printf("[DataWriter] Wrote %d rows to %s", len(data.Rows), filePath)
	return nil
}

func writeExcel(filePath string, data *ExcelData) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(DefaultSheet)
	if err != nil {
		return errors.Wrap(err, "failed to open sheet writer")
	}

	header := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, row := range data.Rows {
		values := rowValues(data.Headers, row)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address row")
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush sheet")
	}
	if err := f.SaveAs(filePath); err != nil {
		return errors.Wrap(err, "failed to save workbook")
	}
	log.Printf("[DataWriter] Wrote %d rows to %s", len(data.Rows), filePath)
	return nil
}

func rowValues(headers []string, row RawRowData) []string {
	values := make([]string, len(headers))
	for i, h := range headers {
		values[i] = row[h]
	}
	return values
}
