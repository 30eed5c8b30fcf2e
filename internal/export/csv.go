package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ContentType is the content type of all exports.
const ContentType = "text/csv; charset=utf-8"

// Spreadsheet applications need the byte order mark to detect UTF-8.
const bom = "\ufeff"

var printer = message.NewPrinter(language.German)

// Table is a header and its rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Write writes the table as semicolon separated CSV, starting with a byte order mark.
func Write(w io.Writer, t Table) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("could not write byte order mark: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}

	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("could not write CSV rows: %w", err)
	}

	return nil
}

// Amount formats the amount with German separators and two decimals, e.g. "1.234,50".
//
// The printer only groups the integer part, the cents come from the decimal.
func Amount(d decimal.Decimal) string {
	rounded := d.Round(2)
	abs := rounded.Abs()

	fixed := abs.StringFixed(2)
	cents := fixed[len(fixed)-2:]

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	return sign + printer.Sprint(number.Decimal(abs.IntPart())) + "," + cents
}

// Date formats a date as "02.01.2006". The zero time is the empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}
