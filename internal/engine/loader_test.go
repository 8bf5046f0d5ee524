package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"laptops/internal/models"
)

const laptopHeader = "Unnamed: 0,Manufacturer,Model Name,Category,Screen Size,Screen,CPU,RAM,Storage,GPU,Operating System,Operating System Version,Weight,Price (Euros)\n"

const publishedHeader = "Unnamed: 0,Manufacturer,Model Name,Category,Screen Size,Screen,CPU,RAM, Storage,GPU,Operating System,Operating System Version,Weight,Price (Euros)\n"

func writeCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "laptops.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	csvContent := []byte(laptopHeader +
		`0,Apple,MacBook Pro,Ultrabook,"13.3""",IPS Panel Retina Display 2560x1600,Intel Core i5 2.3GHz,8GB,128GB SSD,Intel Iris Plus Graphics 640,macOS,,1.37kg,"11912523.48"` + "\n" +
		`1,Apple,Macbook Air,Ultrabook,"13.3""",1440x900,Intel Core i5 1.8GHz,8GB,128GB Flash Storage,Intel HD Graphics 6000,macOS,,1.34kg,7993374.48` + "\n" +
		`2,HP,250 G6,Notebook,"15.6""",Full HD 1920x1080,Intel Core i5 7200U 2.5GHz,8GB,256GB SSD,Intel HD Graphics 620,Windows,10,1.86kg,575.00` + "\n")

	// 1. Load
	inv, err := Load(writeCSV(t, csvContent))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 2. Assertions
	if inv.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", inv.Len())
	}

	header := inv.Header()
	if header[0] != "id" || header[len(header)-1] != "price" {
		t.Errorf("Header not renamed: %v", header)
	}
	if header[1] != "Manufacturer" {
		t.Errorf("Header[1]: expected Manufacturer, got %q", header[1])
	}

	first := inv.Records()[0]
	if first.ID != 0 || first.Price != 11912523 {
		t.Errorf("Row 0: expected id 0 price 11912523, got id %d price %d", first.ID, first.Price)
	}
	if first.CPU != "Intel Core i5 2.3GHz" || first.RAM != "8GB" || first.Storage != "128GB SSD" || first.Graphics != "Intel Iris Plus Graphics 640" {
		t.Errorf("Row 0 attributes: %+v", first)
	}
	if first.Fields[4] != `13.3"` {
		t.Errorf("Quoted field: expected 13.3\", got %q", first.Fields[4])
	}

	if last := inv.Records()[2]; last.Price != 575 {
		t.Errorf("Row 2 price: expected 575, got %d", last.Price)
	}
}

func TestLoadLatin1(t *testing.T) {
	csvContent := []byte("id,name,cpu,ram,storage,graphics,price\n7,Acer Aspire \xe9dition,Intel Core i3,4GB,500GB HDD,Intel HD Graphics,399.90\n")

	inv, err := Load(writeCSV(t, csvContent))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l, ok := inv.GetByIDFast(7)
	if !ok {
		t.Fatal("id 7 missing")
	}
	if l.Fields[1] != "Acer Aspire édition" {
		t.Errorf("Expected decoded name, got %q", l.Fields[1])
	}
	if l.Price != 399 {
		t.Errorf("Expected price 399, got %d", l.Price)
	}
}

func TestLoadUTF8(t *testing.T) {
	csvContent := []byte("id,name,cpu,ram,storage,graphics,price\n7,Acer Aspire édition,Intel Core i3,4GB,500GB HDD,Intel HD Graphics,399\n")

	inv, err := Read(strings.NewReader(string(csvContent)), WithEncoding("UTF-8"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := inv.Records()[0].Fields[1]; got != "Acer Aspire édition" {
		t.Errorf("Expected name unchanged, got %q", got)
	}
}

func TestLoadBareQuote(t *testing.T) {
	// An unquoted screen column carrying an inch mark
	csvContent := "id,model,screen,cpu,price\n1,Apple,13.3\" screen,Intel Core i5,999.99\n2,HP,\"15.6\"\"\",Intel Core i7,575\n"

	inv, err := Read(strings.NewReader(csvContent))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if inv.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", inv.Len())
	}
	first := inv.Records()[0]
	if first.Fields[2] != `13.3" screen` {
		t.Errorf("Bare quote: expected 13.3\" screen, got %q", first.Fields[2])
	}
	if first.Price != 999 || first.CPU != "Intel Core i5" {
		t.Errorf("Row 1: unexpected %+v", first)
	}
	if got := inv.Records()[1].Fields[2]; got != `15.6"` {
		t.Errorf("Quoted field: expected 15.6\", got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []LoadOption
		want    error
	}{
		{"empty file", "", nil, ErrShortHeader},
		{"single column", "id\n1\n", nil, ErrShortHeader},
		{"bad id", "id,cpu,price\nx1,i5,100\n", nil, ErrMalformedRecord},
		{"bad price", "id,cpu,price\n1,i5,cheap\n", nil, ErrMalformedRecord},
		{"arity", "id,cpu,price\n1,i5,100\n2,100\n", nil, ErrMalformedRecord},
		{"unknown encoding", "id,cpu,price\n1,i5,100\n", []LoadOption{WithEncoding("klingon")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Read(strings.NewReader(tt.content), tt.opts...)
			if err == nil {
				t.Fatalf("expected error, got inventory of %d", inv.Len())
			}
			if inv != nil {
				t.Error("expected no partial inventory")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMalformedRecordError(t *testing.T) {
	_, err := New([]string{"id", "cpu", "price"}, [][]string{
		{"1", "i5", "100"},
		{"2", "i7", "1,5"},
	})

	var mre *MalformedRecordError
	if !errors.As(err, &mre) {
		t.Fatalf("expected MalformedRecordError, got %T %v", err, err)
	}
	if mre.Row != 2 || mre.Column != "price" || mre.Value != "1,5" {
		t.Errorf("unexpected details: %+v", mre)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"999.99", 999},
		{"999", 999},
		{" 1199.5 ", 1199},
		{"0.99", 0},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if err != nil {
			t.Errorf("ParsePrice(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}

	for _, bad := range []string{"", "abc", "NaN", "Inf", "1e300"} {
		if _, err := ParsePrice(bad); err == nil {
			t.Errorf("ParsePrice(%q): expected error", bad)
		}
	}
}

func TestParsePriceIdempotent(t *testing.T) {
	for _, s := range []string{"999.99", "1199", "575.00", "3.5"} {
		once, err := ParsePrice(s)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := ParsePrice(strconv.Itoa(once))
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("%q: %d then %d", s, once, twice)
		}
	}
}

func TestSchemaResolution(t *testing.T) {
	// Named columns
	s := newSchema([]string{"no", "Processor", "cpu", "RAM", "disk", "GPU", "cost"})
	if s.Index("cpu") != 2 || s.Index("ram") != 3 || s.Index("graphics") != 5 {
		t.Errorf("named resolution: cpu=%d ram=%d graphics=%d", s.Index("cpu"), s.Index("ram"), s.Index("graphics"))
	}
	// storage is not named and position 8 is past the price column
	if s.Index("storage") != -1 {
		t.Errorf("expected storage unmapped, got %d", s.Index("storage"))
	}

	// Positional fallback
	hdr := []string{"n", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "p"}
	s = newSchema(hdr)
	if s.Index("cpu") != 6 || s.Index("ram") != 7 || s.Index("storage") != 8 || s.Index("graphics") != 9 {
		t.Errorf("positional resolution failed: %+v", s.attrs)
	}
	if hdr[0] != "n" {
		t.Error("newSchema must not modify the caller's header")
	}

	// Published laptop table header: " Storage" carries a leading space and
	// the graphics column is called GPU. Names and positions must agree.
	s = newSchema(strings.Split(strings.TrimSuffix(publishedHeader, "\n"), ","))
	want := map[models.Attribute]int{
		models.AttrCPU:      6,
		models.AttrRAM:      7,
		models.AttrStorage:  8,
		models.AttrGraphics: 9,
	}
	for a, i := range want {
		if got := s.Index(a); got != i {
			t.Errorf("published header: %s expected column %d, got %d", a, i, got)
		}
	}
}

func TestLoadSampleData(t *testing.T) {
	inv, err := Load(filepath.Join("..", "..", "data", "laptops_sample.csv"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if inv.Len() != 21 {
		t.Fatalf("Expected 21 laptops, got %d", inv.Len())
	}
	if inv.Schema().Index(models.AttrStorage) != 8 {
		t.Errorf("Expected storage column 8, got %d", inv.Schema().Index(models.AttrStorage))
	}

	best, n := inv.BestWithinBudget(1000)
	if best == nil || best.ID != 19 || n != 11 {
		t.Errorf("budget 1000: expected id 19 and 11 affordable, got %v and %d", best, n)
	}

	got := inv.FindBySpecifications(models.Criteria{
		models.AttrRAM:      "8GB",
		models.AttrStorage:  "128GB SSD",
		models.AttrGraphics: "Intel Iris Plus Graphics 640",
	})
	if len(got) != 1 || got[0].ID != 0 {
		t.Errorf("specification search: unexpected %v", got)
	}
}
