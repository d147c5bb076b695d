package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"FintechNews/internal/domain"
)

const (
	filePrefix = "fintech_news_"
	dateLayout = "2006-01-02"
	// ContentType is the MIME type of WriteCSV output.
	ContentType = "text/csv"
)

// Header is the column order of the flat export.
var Header = []string{"title", "description", "url", "publishedAt", "source", "classification"}

// Record is one exported article row.
type Record struct {
	Title          string
	Description    string
	URL            string
	PublishedAt    string
	Source         string
	Classification string
}

// Set is the full, unfiltered export for one run.
type Set struct {
	Filename string
	Records  []Record
}

// Filename returns the date-stamped suggested name, fintech_news_YYYYMMDD.csv.
func Filename(now time.Time) string {
	return filePrefix + now.Format("20060102") + ".csv"
}

// NewSet converts classified articles into export records. Descriptions are kept in full.
func NewSet(articles []domain.Article, now time.Time) Set {
	records := make([]Record, 0, len(articles))
	for _, a := range articles {
		records = append(records, Record{
			Title:          a.Title,
			Description:    a.Description,
			URL:            a.URL,
			PublishedAt:    a.PublishedAt.Format(dateLayout),
			Source:         a.Source,
			Classification: string(a.Classification),
		})
	}
	return Set{Filename: Filename(now), Records: records}
}

// WriteCSV serializes the header and one row per record.
func (s Set) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range s.Records {
		row := []string{r.Title, r.Description, r.URL, r.PublishedAt, r.Source, r.Classification}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FileWriter stores export sets inside a directory.
type FileWriter struct {
	dir string
}

// NewFileWriter targets dir; an empty dir means the working directory.
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{dir: dir}
}

// Write creates the directory if needed and returns the written path.
func (f *FileWriter) Write(set Set) (path string, err error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path = filepath.Join(f.dir, set.Filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	if err := set.WriteCSV(file); err != nil {
		return "", err
	}
	return path, nil
}
