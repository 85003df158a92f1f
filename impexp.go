package fintrack

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// BackupVersion is the version written in every backup.
const BackupVersion = "1.0"

// Backup is the content of a JSON backup file.
type Backup struct {
	Version      string
	ExportDate   time.Time
	Transactions Ledger
	Savings      Registry
	People       []Person
}

type backupData struct {
	Transactions Ledger   `json:"transactions"`
	SavingsData  Registry `json:"savingsData"`
	People       []Person `json:"moneyGivenPeople"`
}

type backupFile struct {
	Version    string     `json:"version"`
	ExportDate string     `json:"exportDate"`
	Data       backupData `json:"data"`
}

// BackupFilename is the suggested name of a backup made on day.
func BackupFilename(day Date) string { return "expense-tracker-backup-" + day.String() + ".json" }

// CSVFilename is the suggested name of a CSV export made on day.
func CSVFilename(day Date) string { return "expense-tracker-" + day.String() + ".csv" }

// ExportJSON writes b as an indented backup file stamped with now.
func ExportJSON(w io.Writer, b Backup, now time.Time) error {
	people := b.People
	if people == nil {
		people = []Person{}
	}
	f := backupFile{
		Version:    BackupVersion,
		ExportDate: now.UTC().Format(TimestampFormat),
		Data:       backupData{Transactions: b.Transactions, SavingsData: b.Savings, People: people},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("could not encode backup: %w", err)
	}
	return nil
}

// ImportJSON reads a backup file. It returns ErrParseJSON when the content
// is not JSON, and ErrImportFormat when it is not a backup.
func ImportJSON(r io.Reader) (Backup, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Backup{}, fmt.Errorf("could not read backup: %w", err)
	}
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return Backup{}, ErrParseJSON
	}
	// Only a missing transactions key is rejected, null reads as no transactions.
	data, err := jsonpath.Get("$.data", doc)
	if err != nil {
		return Backup{}, ErrImportFormat
	}
	fields, ok := data.(map[string]any)
	if !ok {
		return Backup{}, ErrImportFormat
	}
	if _, ok := fields["transactions"]; !ok {
		return Backup{}, ErrImportFormat
	}

	f := backupFile{Data: backupData{SavingsData: NewRegistry()}}
	if err := json.Unmarshal(content, &f); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	for _, tx := range f.Data.Transactions.Transactions() {
		if err := tx.Validate(); err != nil {
			return Backup{}, fmt.Errorf("%w: transaction %s: %v", ErrImportFormat, tx.Identifier(), err)
		}
	}
	b := Backup{
		Version:      f.Version,
		Transactions: f.Data.Transactions,
		Savings:      f.Data.SavingsData,
		People:       f.Data.People,
	}
	if f.ExportDate != "" {
		b.ExportDate, _ = time.Parse(time.RFC3339, f.ExportDate)
	}
	return b, nil
}

// DateFormatter renders the Date column of a CSV export.
type DateFormatter func(time.Time) string

// USDate formats like "1/2/2006", in local time.
func USDate(t time.Time) string { return t.Local().Format("1/2/2006") }

// ExportCSV writes the transactions, most recent first. Every cell is quoted
// and missing values are written "-".
func ExportCSV(w io.Writer, l Ledger, format DateFormatter) error {
	if format == nil {
		format = USDate
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("Date,Type,Category,Source,Amount,Description")
	for _, tx := range l.Transactions() {
		category, _ := CategoryOf(tx)
		cells := []string{
			format(tx.When()),
			string(tx.What()),
			orDash(string(category)),
			orDash(string(tx.From())),
			tx.Value().Plain(),
			orDash(tx.Memo()),
		}
		bw.WriteByte('\n')
		for i, c := range cells {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(`"` + strings.ReplaceAll(c, `"`, `""`) + `"`)
		}
	}
	return bw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
