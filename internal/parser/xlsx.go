package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Parse reads the first sheet using raw cell values so numbers are not
// reformatted by cell styles.
func (xlsxParser) Parse(name string, r io.Reader) (*analysis.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	// Cells right of the header become unnamed columns.
	header := rows[0]
	for _, row := range rows[1:] {
		for len(header) < len(row) {
			header = append(header, "")
		}
	}
	return analysis.FromRecords(name, header, rows[1:])
}
