package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/budget-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes records with a header row taken from the csv struct tags.
func WriteCSV(w io.Writer, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
