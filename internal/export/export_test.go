package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FintechNews/internal/domain"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 23, 10, 0, 0, time.UTC)
	require.Equal(t, "fintech_news_20260307.csv", Filename(now))
}

func TestWriteCSVKeepsFullDescription(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("open banking, \"quoted\" ", 20)
	articles := []domain.Article{
		{
			Title:          "BNPL rules",
			Description:    long,
			URL:            "https://example.com/bnpl",
			PublishedAt:    time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC),
			Source:         "Finextra",
			Classification: domain.National,
		},
		{
			Title:          "Neobank IPO",
			URL:            "https://example.com/ipo",
			PublishedAt:    time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC),
			Source:         "TechCrunch",
			Classification: domain.Funding,
		},
	}

	set := NewSet(articles, time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC))
	require.Equal(t, "fintech_news_20261016.csv", set.Filename)
	require.Len(t, set.Records, 2)

	var buf bytes.Buffer
	require.NoError(t, set.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Header, rows[0])
	require.Equal(t, []string{"BNPL rules", long, "https://example.com/bnpl", "2026-10-14", "Finextra", "National"}, rows[1])
	require.Equal(t, "", rows[2][1])
	require.Equal(t, "Funding", rows[2][5])
}

func TestWriteCSVEmptySetHasHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Set{}.WriteCSV(&buf))
	require.Equal(t, "title,description,url,publishedAt,source,classification\n", buf.String())
}

func TestFileWriter(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	set := Set{
		Filename: "fintech_news_20261016.csv",
		Records:  []Record{{Title: "a", Classification: "Global"}},
	}

	path, err := NewFileWriter(dir).Write(set)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, set.Filename), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "a,,,,,Global")
}
