package loanexport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const dateLayout = "2006-01-02"

// ErrWritingCSVFailed is returned when the CSV document cannot be written.
var ErrWritingCSVFailed = errors.New("writing loan export csv failed")

// Header is the first row of every export.
func Header() []string {
	return []string{"Book Title", "User", "Status", "Requested Date", "Due Date", "Returned Date", "Overdue", "Notes"}
}

// Project selects and formats the rows of the export, header excluded.
//
// Query Logic:
//
//	GIVEN: loans of all users
//	WHEN: LoanExport is executed
//	THEN: one row per loan matching the status filter
//	EXCLUDES: loans that are not overdue at query.Now, if OverdueOnly is set
func Project(loans []core.LoanRequest, query Query) [][]string {
	rows := make([][]string, 0, len(loans))

	for _, loan := range loans {
		if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, loan.Status) {
			continue
		}

		overdue := loan.IsOverdue(query.Now)
		if query.OverdueOnly && !overdue {
			continue
		}

		rows = append(rows, []string{
			loan.Book.Title,
			loan.UserID,
			loan.Status.String(),
			formatDate(&loan.RequestedAt),
			formatDate(loan.DueDate),
			formatDate(loan.ReturnedAt),
			strconv.FormatBool(overdue),
			loan.NotesText(),
		})
	}

	return rows
}

// Render writes the header and rows as one CSV document.
func Render(rows [][]string, query Query) (Export, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write(Header()); err != nil {
		return Export{}, errors.Join(ErrWritingCSVFailed, err)
	}

	if err := writer.WriteAll(rows); err != nil {
		return Export{}, errors.Join(ErrWritingCSVFailed, err)
	}

	return Export{
		FileName: FileName(query.Now),
		Rows:     len(rows),
		Data:     buf.Bytes(),
	}, nil
}

// FileName returns the download name of an export made at now.
func FileName(now time.Time) string {
	return "loan_requests_" + now.UTC().Format(dateLayout) + ".csv"
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return t.UTC().Format(dateLayout)
}
