package grading

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
)

//go:embed data/sales.csv
var salesCSV []byte

type SaleRow struct {
	Region    string
	Rep       string
	Item      string
	Units     float64
	UnitPrice float64
}

// RegionSales is one row of a Region/Sales summary table.
type RegionSales struct {
	Region string
	Sales  float64
}

// Dataset is the worksheet candidates answer value and table questions about.
type Dataset struct {
	rows []SaleRow
}

func LoadDataset() (*Dataset, error) {
	return ParseDataset(salesCSV)
}

func ParseDataset(data []byte) (*Dataset, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("sales dataset has no rows")
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, required := range []string{"Region", "Rep", "Item", "Units", "UnitPrice"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sales dataset is missing column %s", required)
		}
	}

	rows := make([]SaleRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		units, err := strconv.ParseFloat(rec[cols["Units"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid Units: %w", line+2, err)
		}
		price, err := strconv.ParseFloat(rec[cols["UnitPrice"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid UnitPrice: %w", line+2, err)
		}
		rows = append(rows, SaleRow{
			Region:    rec[cols["Region"]],
			Rep:       rec[cols["Rep"]],
			Item:      rec[cols["Item"]],
			Units:     units,
			UnitPrice: price,
		})
	}

	return &Dataset{rows: rows}, nil
}

// Value computes the expected numeric answer registered under key.
func (d *Dataset) Value(key string) (float64, error) {
	switch key {
	case "total_units_east_pencil":
		return d.sumUnits(func(r SaleRow) bool { return r.Region == "East" && r.Item == "Pencil" }), nil
	case "total_units_west":
		return d.sumUnits(func(r SaleRow) bool { return r.Region == "West" }), nil
	case "unitprice_rep_item":
		for _, r := range d.rows {
			if r.Rep == "Kivell" && r.Item == "Binder" {
				return r.UnitPrice, nil
			}
		}
		return math.NaN(), nil
	default:
		return 0, fmt.Errorf("unknown value key %q", key)
	}
}

// Table computes the expected summary table registered under key.
func (d *Dataset) Table(key string) ([]RegionSales, error) {
	switch key {
	case "region_total_sales_desc":
		return d.regionSales(), nil
	default:
		return nil, fmt.Errorf("unknown table key %q", key)
	}
}

func (d *Dataset) sumUnits(match func(SaleRow) bool) float64 {
	var total float64
	for _, r := range d.rows {
		if match(r) {
			total += r.Units
		}
	}
	return total
}

func (d *Dataset) regionSales() []RegionSales {
	var order []string
	totals := make(map[string]float64)
	for _, r := range d.rows {
		if _, ok := totals[r.Region]; !ok {
			order = append(order, r.Region)
		}
		totals[r.Region] += r.Units * r.UnitPrice
	}

	out := make([]RegionSales, 0, len(order))
	for _, region := range order {
		out = append(out, RegionSales{Region: region, Sales: totals[region]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	return out
}
