// Package aggregator folds the rows of one match export into per-player and
// per-team running totals.
package aggregator

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/model"
)

// ErrMalformedRow is wrapped by every FieldError.
var ErrMalformedRow = errors.New("malformed row")

var errShortRow = errors.New("too few fields")

// RowReader yields the data rows of one match file in file order and
// returns io.EOF once exhausted. *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// FieldError reports a row that cannot be folded. It aborts the file.
type FieldError struct {
	Row    int    // 1-based data row, header excluded
	Column string // semantic column name, empty for short rows
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: %s column %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// Aggregate runs the pipeline selected by kind and returns *model.Players or
// *model.Teams.
func Aggregate(kind model.Kind, r RowReader, l layout.Layout) (any, error) {
	switch kind {
	case model.KindPlayer:
		return Players(r, l)
	case model.KindTeam:
		return Teams(r, l)
	default:
		return nil, fmt.Errorf("unknown aggregation kind %q", kind)
	}
}

// row is one data row plus its position, for error reporting.
type row struct {
	n      int
	fields []string
}

func (r row) text(idx int) string {
	return r.fields[idx]
}

// count parses a non-negative integer counter. Values are never coerced:
// blanks and garbage are errors.
func (r row) count(idx int, column string) (int, error) {
	v := r.fields[idx]
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &FieldError{Row: r.n, Column: column, Value: v, Err: err}
	}
	if n < 0 {
		return 0, &FieldError{Row: r.n, Column: column, Value: v, Err: errors.New("negative counter")}
	}
	return n, nil
}

// eachRow drains rd, handing every row wide enough for l to fn.
func eachRow(rd RowReader, l layout.Layout, fn func(row) error) error {
	width := l.MaxIndex() + 1
	for n := 1; ; n++ {
		fields, err := rd.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", n, err)
		}
		if len(fields) < width {
			return &FieldError{Row: n, Err: fmt.Errorf("%w: got %d, need %d", errShortRow, len(fields), width)}
		}
		if err := fn(row{n: n, fields: fields}); err != nil {
			return err
		}
	}
}
