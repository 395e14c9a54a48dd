package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/ngenohkevin/bookstore-admin/internal/models"
)

// bookRow mirrors the expected CSV column set. Header matching is
// case-sensitive; unknown columns are ignored.
type bookRow struct {
	Title       string `csv:"title"`
	Author      string `csv:"author"`
	Description string `csv:"description"`
	Genres      string `csv:"genres"`
	Publisher   string `csv:"publisher"`
	Price       string `csv:"price"`
	PublishDate string `csv:"publishDate"`
	CoverImg    string `csv:"coverImg"`
	ISBN        string `csv:"isbn"`
	Pages       string `csv:"pages"`
	Language    string `csv:"language"`
	Edition     string `csv:"edition"`
	BookFormat  string `csv:"bookFormat"`
	Characters  string `csv:"characters"`
	Awards      string `csv:"awards"`
}

// slugTokens hands out monotonically increasing suffixes so two records
// built from the same title in one batch never produce colliding slugs.
type slugTokens struct {
	next int64
}

func newSlugTokens() *slugTokens {
	return &slugTokens{next: time.Now().UnixMilli()}
}

func (t *slugTokens) take() string {
	v := t.next
	t.next++
	return strconv.FormatInt(v, 10)
}

// BuildRecords parses a CSV document with a header row into normalized
// BookRecords, preserving input row order. Quoted fields and embedded commas
// are handled; empty lines are skipped. Rows failing the inclusion filter
// (blank title or non-positive price) are dropped without being reported as
// errors; skipped counts how many were dropped.
func BuildRecords(r io.Reader) (records []models.BookRecord, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var rows []*bookRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to parse CSV: %w", err)
	}

	tokens := newSlugTokens()
	records = make([]models.BookRecord, 0, len(rows))
	for _, row := range rows {
		rec := buildRecord(row, tokens)
		if !rec.Importable() {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func buildRecord(row *bookRow, tokens *slugTokens) models.BookRecord {
	rec := models.BookRecord{
		Title:       strings.TrimSpace(row.Title),
		Author:      strings.TrimSpace(row.Author),
		Description: strings.TrimSpace(row.Description),
		Slug:        Slugify(row.Title) + "-" + tokens.take(),
		Publisher:   strings.TrimSpace(row.Publisher),
		Price:       FormatPrice(ParsePrice(row.Price)),
		Genre:       ParseGenreField(TextField(row.Genres)),
		PublishDate: strings.TrimSpace(row.PublishDate),
		Image:       []string{},
		ISBN:        strings.TrimSpace(row.ISBN),
		Language:    strings.TrimSpace(row.Language),
		Edition:     strings.TrimSpace(row.Edition),
		BookFormat:  strings.TrimSpace(row.BookFormat),
		Characters:  ParseArrayField(TextField(row.Characters)),
		Awards:      ParseArrayField(TextField(row.Awards)),
	}

	if img := strings.TrimSpace(row.CoverImg); img != "" {
		rec.Image = []string{img}
	}
	if pages, ok := parsePages(row.Pages); ok {
		rec.Pages = &pages
	}
	return rec
}

var leadingInt = regexp.MustCompile(`^[0-9]+`)

// parsePages parses the page count. Absent or unparsable values are omitted
// rather than coerced to zero.
func parsePages(raw string) (int, bool) {
	match := leadingInt.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, false
	}
	pages, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return pages, true
}
