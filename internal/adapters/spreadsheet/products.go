// Package spreadsheet converts the catalog to and from XLSX and CSV sheets.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/shopmarket/internal/domain"
)

const (
	sheetName = "Products"
	listSep   = "|"
)

// Columns is the header row of exported sheets. Import accepts the columns
// in any order and ignores unknown ones.
var Columns = []string{
	"id", "name", "description", "price", "original_price", "discount",
	"category", "subcategory", "brand", "gender",
	"colors", "sizes", "tags", "images",
	"stock_count", "rating", "review_count",
	"is_visible", "is_featured", "is_new",
	"specifications", "related_products",
}

var ErrNoHeader = errors.New("sheet has no id or name column")

func row(p domain.Product) []string {
	opt := ""
	if p.OriginalPrice != nil {
		opt = money(*p.OriginalPrice)
	}
	disc := ""
	if p.Discount != nil {
		disc = strconv.Itoa(*p.Discount)
	}
	return []string{
		p.ID, p.Name, p.Description, money(p.Price), opt, disc,
		p.Category, p.Subcategory, p.Brand, string(p.Gender),
		strings.Join(p.Colors, listSep), strings.Join(p.Sizes, listSep),
		strings.Join(p.Tags, listSep), strings.Join(p.Images, listSep),
		strconv.Itoa(p.StockCount), strconv.FormatFloat(p.Rating, 'f', 1, 64), strconv.Itoa(p.ReviewCount),
		strconv.FormatBool(p.IsVisible), strconv.FormatBool(p.IsFeatured), strconv.FormatBool(p.IsNew),
		specs(p.Specifications), strings.Join(p.RelatedProducts, listSep),
	}
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func specs(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, listSep)
}

// WriteXLSX writes the products to a single-sheet workbook.
func WriteXLSX(w io.Writer, ps []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(Columns)); err != nil {
		return err
	}
	for i, p := range ps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(row(p))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func cells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func WriteCSV(w io.Writer, ps []domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range ps {
		if err := cw.Write(row(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadXLSX parses the first sheet of a workbook into products. Blank rows are
// skipped; malformed numbers fail with the row number.
func ReadXLSX(r io.Reader) ([]domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func ReadCSV(r io.Reader) ([]domain.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]domain.Product, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, ErrNoHeader
	}
	out := []domain.Product{}
	for n, r := range rows[1:] {
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(r) {
				return ""
			}
			return strings.TrimSpace(r[i])
		}
		if strings.Join(r, "") == "" {
			continue
		}
		p, err := parseProduct(get)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseProduct(get func(string) string) (domain.Product, error) {
	p := domain.Product{
		ID:              get("id"),
		Name:            get("name"),
		Description:     get("description"),
		Category:        get("category"),
		Subcategory:     get("subcategory"),
		Brand:           get("brand"),
		Colors:          list(get("colors")),
		Sizes:           list(get("sizes")),
		Tags:            list(get("tags")),
		Images:          list(get("images")),
		RelatedProducts: list(get("related_products")),
		IsVisible:       true,
	}
	var err error
	if p.Price, err = num(get("price")); err != nil {
		return p, fmt.Errorf("price: %w", err)
	}
	if v := get("original_price"); v != "" {
		op, err := num(v)
		if err != nil {
			return p, fmt.Errorf("original_price: %w", err)
		}
		p.OriginalPrice = &op
	}
	if v := get("discount"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("discount: %w", err)
		}
		p.Discount = &d
	}
	if v := get("stock_count"); v != "" {
		if p.StockCount, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("stock_count: %w", err)
		}
	}
	if v := get("rating"); v != "" {
		if p.Rating, err = num(v); err != nil {
			return p, fmt.Errorf("rating: %w", err)
		}
	}
	if v := get("review_count"); v != "" {
		if p.ReviewCount, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("review_count: %w", err)
		}
	}
	g := get("gender")
	if g == "" {
		g = string(domain.GenderUnisex)
	}
	gender, ok := domain.ParseGender(g)
	if !ok {
		return p, fmt.Errorf("gender %q", g)
	}
	p.Gender = gender
	if v := get("is_visible"); v != "" {
		p.IsVisible = flag(v)
	}
	p.IsFeatured = flag(get("is_featured"))
	p.IsNew = flag(get("is_new"))
	if v := get("specifications"); v != "" {
		p.Specifications = map[string]string{}
		for _, kv := range list(v) {
			k, val, _ := strings.Cut(kv, "=")
			p.Specifications[strings.TrimSpace(k)] = strings.TrimSpace(val)
		}
	}
	return p, nil
}

func num(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func flag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

func list(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
