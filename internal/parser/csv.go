package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvParser) Parse(name string, r io.Reader) (*analysis.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}
	return analysis.FromRecords(name, header, records)
}
