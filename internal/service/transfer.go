package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
)

// TransferService moves the workout log in and out as CSV or YAML.
type TransferService struct {
	Store *WorkoutStore
}

// ImportOptions controls how imported rows meet existing days.
type ImportOptions struct {
	// Replace overwrites days that already have a workout instead of
	// skipping them.
	Replace bool
}

type ImportResult struct {
	Imported int
	Replaced int
	Skipped  int
	Errors   []error
}

var csvHeader = []string{"day", "category", "title", "description"}

const utf8BOM = "\ufeff"

// transferRecord is one workout in export form.
type transferRecord struct {
	Day         string `yaml:"day"`
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

type transferDoc struct {
	Workouts []transferRecord `yaml:"workouts"`
}

// ExportCSV writes the snapshot as CSV with a header row, ordered by day.
func (s *TransferService) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, wk := range s.Store.Snapshot() {
		if err := cw.Write([]string{wk.Day.String(), string(wk.Category), wk.Title, wk.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportYAML writes the snapshot as a YAML document with a workouts list.
func (s *TransferService) ExportYAML(w io.Writer) error {
	doc := transferDoc{Workouts: []transferRecord{}}
	for _, wk := range s.Store.Snapshot() {
		doc.Workouts = append(doc.Workouts, transferRecord{
			Day:         wk.Day.String(),
			Category:    string(wk.Category),
			Title:       wk.Title,
			Description: wk.Description,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// ImportCSV reads rows of day, category, title[, description]. A leading
// header row and a UTF-8 byte order mark are optional. Row problems are
// collected in the result, numbered by the physical line the row starts on.
func (s *TransferService) ImportCSV(ctx context.Context, r io.Reader, opts ImportOptions) (ImportResult, error) {
	res := ImportResult{}
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(len(utf8BOM)); string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	csvr := csv.NewReader(br)
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	for first := true; ; first = false {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", pe.StartLine, pe.Err))
			} else {
				res.Errors = append(res.Errors, err)
			}
			continue
		}
		line, _ := csvr.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(rec[0]), csvHeader[0]) {
			continue
		}
		if len(rec) < 3 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at least 3 columns (day, category, title)", line))
			continue
		}
		tr := transferRecord{Day: rec[0], Category: rec[1], Title: rec[2]}
		if len(rec) > 3 {
			tr.Description = rec[3]
		}
		if err := s.importRecord(ctx, tr, opts, &res); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
		}
	}
	return res, nil
}

// ImportYAML reads a document in the ExportYAML shape.
func (s *TransferService) ImportYAML(ctx context.Context, r io.Reader, opts ImportOptions) (ImportResult, error) {
	var doc transferDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("decode yaml: %w", err)
	}
	res := ImportResult{}
	for i, tr := range doc.Workouts {
		if err := s.importRecord(ctx, tr, opts, &res); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", i+1, err))
		}
	}
	return res, nil
}

func (s *TransferService) importRecord(ctx context.Context, tr transferRecord, opts ImportOptions, res *ImportResult) error {
	day, err := parseImportDay(tr.Day)
	if err != nil {
		return err
	}
	cat, err := domain.ParseCategory(tr.Category)
	if err != nil {
		return err
	}
	d := domain.Draft{
		Title:       strings.TrimSpace(tr.Title),
		Description: strings.TrimSpace(tr.Description),
		Category:    cat,
		Day:         day,
	}

	if _, exists := s.Store.FindByDay(day); exists {
		if !opts.Replace {
			res.Skipped++
			return nil
		}
		if _, err := s.Store.Upsert(ctx, d); err != nil {
			return err
		}
		res.Replaced++
		return nil
	}
	if _, err := s.Store.Insert(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDayTaken) {
			res.Skipped++
			return nil
		}
		return err
	}
	res.Imported++
	return nil
}

// parseImportDay accepts ISO dates and day/month/year dates.
func parseImportDay(s string) (domain.Day, error) {
	s = strings.TrimSpace(s)
	if d, err := domain.ParseDay(s); err == nil {
		return d, nil
	}
	t, err := time.Parse("2/01/2006", s)
	if err != nil {
		return domain.Day{}, fmt.Errorf("day %q: want YYYY-MM-DD or D/MM/YYYY", s)
	}
	return domain.DayOf(t), nil
}
