package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,price,description,sizes,colors,stock,availability,images
Masala Chai,Drinks,200,Spiced tea,,,10,,https://example.com/chai.jpg
Kurta,Clothing,450.50,Cotton kurta,"S, M, L","Blue; White",,,https://example.com/k1.jpg;https://example.com/k2.jpg
,,,,,,,,
Secret Blend,Drinks,500,,,,0,hide,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, "store-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 products imported, got %d", count)
	}

	chai := repo.items[0]
	if chai.Name != "Masala Chai" || chai.Price != 20000 || chai.Stock != 10 {
		t.Fatalf("unexpected product data: %+v", chai)
	}
	if chai.SheetRowIndex == nil || *chai.SheetRowIndex != 2 {
		t.Fatalf("expected sheet row 2, got %v", chai.SheetRowIndex)
	}
	if chai.UpdatedSource != domain.SourceSheet {
		t.Fatalf("expected sheet source, got %q", chai.UpdatedSource)
	}
	if chai.ThumbnailURL != "https://example.com/chai.jpg" {
		t.Fatalf("expected first image as thumbnail, got %q", chai.ThumbnailURL)
	}

	kurta := repo.items[1]
	if kurta.Price != 45050 {
		t.Fatalf("expected decimal price in minor units, got %d", kurta.Price)
	}
	if len(kurta.Sizes) != 3 || kurta.Sizes[1] != "M" {
		t.Fatalf("unexpected sizes: %v", kurta.Sizes)
	}
	if len(kurta.Colors) != 2 || kurta.Colors[1] != "White" {
		t.Fatalf("unexpected colors: %v", kurta.Colors)
	}
	if kurta.Stock != domain.UnlimitedStock {
		t.Fatalf("empty stock cell should mean unlimited, got %d", kurta.Stock)
	}
	if len(kurta.ImageURLs) != 2 {
		t.Fatalf("expected 2 images, got %v", kurta.ImageURLs)
	}
	// The blank row is skipped but still advances the sheet row counter.
	if repo.items[2].SheetRowIndex == nil || *repo.items[2].SheetRowIndex != 5 {
		t.Fatalf("expected sheet row 5 for the last product, got %v", repo.items[2].SheetRowIndex)
	}
	if repo.items[2].Availability != domain.AvailabilityHide {
		t.Fatalf("expected hidden availability, got %q", repo.items[2].Availability)
	}
}

func TestCSVImporter_BadPrice(t *testing.T) {
	csvData := `name,category,price
Broken,Drinks,not-a-price`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{}, "store-1")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a malformed price")
	}
}

func TestCSVImporter_MissingPrice(t *testing.T) {
	csvData := `name,category,price
Freebie,Drinks,`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{}, "store-1")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a missing price")
	}
}
