// Package export writes finished vacancy tables to disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-dou-scraper/internal/scraper"
)

// Write picks the format from the file extension: .json or CSV otherwise.
func Write(path string, vacancies []scraper.Vacancy) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return WriteJSON(path, vacancies)
	}
	return WriteCSV(path, vacancies)
}

// WriteCSV writes a UTF-8, header-first table with scraper.Columns.
// Missing parent directories are created.
func WriteCSV(path string, vacancies []scraper.Vacancy) error {
	f, err := create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(scraper.Columns); err != nil {
		f.Close()
		return fmt.Errorf("%w: header: %w", scraper.ErrWrite, err)
	}
	for i, v := range vacancies {
		if err := w.Write(v.Row()); err != nil {
			f.Close()
			return fmt.Errorf("%w: row %d: %w", scraper.ErrWrite, i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %w", scraper.ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", scraper.ErrWrite, path, err)
	}
	return nil
}

// WriteJSON writes the vacancies as an indented JSON array.
func WriteJSON(path string, vacancies []scraper.Vacancy) error {
	if vacancies == nil {
		vacancies = []scraper.Vacancy{}
	}
	data, err := json.MarshalIndent(vacancies, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", scraper.ErrWrite, err)
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", scraper.ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", scraper.ErrWrite, path, err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create directory %s: %w", scraper.ErrWrite, dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scraper.ErrWrite, err)
	}
	return f, nil
}
