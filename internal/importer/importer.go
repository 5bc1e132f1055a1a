// Package importer loads a store's catalog from a spreadsheet CSV export.
// Each data row maps to one product keyed by its sheet row number, so
// re-running a sync updates rows in place instead of duplicating them.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads sheet exports and inserts/updates a store's products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	storeID     string
}

func NewCSVImporter(r io.Reader, repo ProductWriter, storeID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		storeID:     storeID,
	}
}

// Run parses the sheet and upserts one product per data row. It returns the
// number of products written; rows without a name are skipped.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	rowNum := 1 // header is sheet row 1

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		rowNum++

		p, err := i.parseRow(record, index, rowNum)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert row %d (%s): %w", rowNum, p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) parseRow(record []string, index map[string]int, rowNum int) (*domain.Product, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	price, err := parsePrice(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("row %d (%s): %w", rowNum, name, err)
	}

	stock := domain.UnlimitedStock
	if raw := pick(record, index, "stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("row %d (%s): bad stock %q", rowNum, name, raw)
		}
		stock = n
	}

	availability := domain.AvailabilityShow
	if strings.EqualFold(pick(record, index, "availability"), domain.AvailabilityHide) {
		availability = domain.AvailabilityHide
	}

	images := splitList(pick(record, index, "images"))
	var thumbnail string
	if len(images) > 0 {
		thumbnail = images[0]
	}

	row := rowNum
	return &domain.Product{
		StoreID:       i.storeID,
		Name:          name,
		Category:      pick(record, index, "category"),
		Description:   pick(record, index, "description"),
		Price:         price,
		Stock:         stock,
		Availability:  availability,
		Sizes:         splitList(pick(record, index, "sizes")),
		Colors:        splitList(pick(record, index, "colors")),
		ThumbnailURL:  thumbnail,
		ImageURLs:     images,
		SheetRowIndex: &row,
		UpdatedSource: domain.SourceSheet,
	}, nil
}

// parsePrice converts a sheet price written in major units ("450" or
// "450.50") to minor units.
func parsePrice(raw string) (int64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "₹"))
	if raw == "" {
		return 0, errors.New("missing price")
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("bad price %q", raw)
	}
	return int64(math.Round(f * 100)), nil
}

// splitList parses "S, M, L" or "S;M;L" cells.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
