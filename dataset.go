package hcluster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a labeled table of vectors: Rows[i] is the vector for
// RowLabels[i], and column j of every row holds the value for ColLabels[j].
type Dataset struct {
	RowLabels []string
	ColLabels []string
	Rows      [][]float64
}

// blogData mirrors the blog/word-count JSON document.
type blogData struct {
	Words []string `json:"words"`
	Blogs []struct {
		Name string    `json:"name"`
		URL  string    `json:"url"`
		WC   []float64 `json:"wc"`
	} `json:"blogs"`
}

// ReadBlogData decodes a blog/word-count document of the form
//
//	{"words": ["w1", ...], "blogs": [{"name": "...", "url": "...", "wc": [n1, ...]}]}
//
// into a Dataset with one row per blog and one column per word.
func ReadBlogData(r io.Reader) (*Dataset, error) {
	var doc blogData
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding blog data: %v", ErrInvalidInput, err)
	}

	ds := &Dataset{
		RowLabels: make([]string, len(doc.Blogs)),
		ColLabels: doc.Words,
		Rows:      make([][]float64, len(doc.Blogs)),
	}
	for i, blog := range doc.Blogs {
		if len(blog.WC) != len(doc.Words) {
			return nil, &InputError{Row: i, Col: -1,
				Err: fmt.Errorf("%w: blog %q has %d counts for %d words", ErrDimensionMismatch, blog.Name, len(blog.WC), len(doc.Words))}
		}
		ds.RowLabels[i] = blog.Name
		ds.Rows[i] = blog.WC
	}
	return ds, nil
}

// ReadMatrix reads a delimited matrix such as the tab-separated blog word
// count file. The first record holds the column labels (its first cell is
// ignored); every following record holds a row label followed by one number
// per column.
func ReadMatrix(r io.Reader, sep rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidInput, err)
	}

	ds := &Dataset{}
	for _, h := range header[1:] {
		ds.ColLabels = append(ds.ColLabels, strings.TrimSpace(h))
	}

	for row := 0; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %v", ErrInvalidInput, row, err)
		}
		if len(record)-1 != len(ds.ColLabels) {
			return nil, &InputError{Row: row, Col: -1,
				Err: fmt.Errorf("%w: row has %d values, want %d", ErrDimensionMismatch, len(record)-1, len(ds.ColLabels))}
		}

		values := make([]float64, len(ds.ColLabels))
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &InputError{Row: row, Col: j, Err: err}
			}
			values[j] = v
		}
		ds.RowLabels = append(ds.RowLabels, strings.TrimSpace(record[0]))
		ds.Rows = append(ds.Rows, values)
	}

	return ds, nil
}

// Transpose returns a new Dataset with rows and columns swapped, so that
// clustering it groups the original columns. Every row must have one value
// per column label.
func (d *Dataset) Transpose() (*Dataset, error) {
	r, c := len(d.Rows), len(d.ColLabels)
	for i, row := range d.Rows {
		if len(row) != c {
			return nil, &InputError{Row: i, Col: -1,
				Err: fmt.Errorf("%w: row has %d values, want %d", ErrDimensionMismatch, len(row), c)}
		}
	}

	out := &Dataset{
		RowLabels: append([]string(nil), d.ColLabels...),
		ColLabels: append([]string(nil), d.RowLabels...),
		Rows:      make([][]float64, c),
	}
	if r == 0 || c == 0 {
		for j := range out.Rows {
			out.Rows[j] = []float64{}
		}
		return out, nil
	}

	flat := make([]float64, 0, r*c)
	for _, row := range d.Rows {
		flat = append(flat, row...)
	}
	t := mat.DenseCopyOf(mat.NewDense(r, c, flat).T())
	for j := range out.Rows {
		out.Rows[j] = append([]float64(nil), t.RawRowView(j)...)
	}
	return out, nil
}
