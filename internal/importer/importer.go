// Package importer parses uploaded tabular files (CSV or Excel) into
// transaction rows for bulk creation. The whole batch is rejected on the
// first malformed cell; a partially imported file is worse than an error.
package importer

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "bizledger/internal/errors"
)

// DateLayout is the accepted cell format for dates.
const DateLayout = "2006-01-02"

// Row is one parsed transaction line.
type Row struct {
	Date     time.Time
	Product  string
	Price    float64
	Quantity int
	Total    decimal.Decimal
}

// expected header columns; total is optional and computed when absent.
var requiredColumns = []string{"date", "product", "price", "quantity"}

// Parse reads an uploaded file and returns its transaction rows. The
// format is chosen by file extension: .csv via encoding/csv, .xlsx via
// excelize. Legacy OLE .xls workbooks are not readable by excelize and
// are rejected as unsupported. The first row must be a header containing
// at least date, product, price and quantity (any order,
// case-insensitive).
func Parse(filename string, r io.Reader) ([]Row, error) {
	records, err := readRecords(filename, r)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "File has no data rows")
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(cols, record)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"Row "+strconv.Itoa(i+2)+": "+err.Error())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readRecords(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed CSV file")
		}
		return records, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed Excel file")
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed Excel file")
		}
		return rows, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported file type (use .csv or .xlsx)")
	}
}

// mapHeader resolves column name -> index.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing required column: "+name)
		}
	}
	return cols, nil
}

func parseRow(cols map[string]int, record []string) (Row, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := time.Parse(DateLayout, cell("date"))
	if err != nil {
		return Row{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date (want yyyy-MM-dd)")
	}

	product := cell("product")
	if product == "" {
		return Row{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "product is required")
	}

	price, err := strconv.ParseFloat(cell("price"), 64)
	if err != nil {
		return Row{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid price")
	}

	quantity, err := strconv.Atoi(cell("quantity"))
	if err != nil || quantity <= 0 {
		return Row{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid quantity")
	}

	// Total column is optional; compute price * quantity in decimal when
	// it is absent or blank.
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	if raw := cell("total"); raw != "" {
		total, err = decimal.NewFromString(raw)
		if err != nil {
			return Row{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid total")
		}
	}

	return Row{
		Date:     date,
		Product:  product,
		Price:    price,
		Quantity: quantity,
		Total:    total,
	}, nil
}
