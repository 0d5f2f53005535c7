// Package profiling summarises a survey dataset before training.
package profiling

import (
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"
	"time"

	"careerpath/internal/dataset"
	"careerpath/internal/errors"
	"careerpath/internal/labels"
)

// Profile is the description of a dataset
type Profile struct {
	Source  string          `json:"source"`
	Rows    int             `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
	Raw     ClassBalance    `json:"raw_classes"`
	Merged  ClassBalance    `json:"merged_classes"` // after the relabeling table
}

// ProfileDataset summarises every survey column and the career distribution
func ProfileDataset(ds *dataset.Dataset, mergeTable map[string]string) (*Profile, error) {
	start := time.Now()
	if ds.Len() == 0 {
		return nil, errors.DatasetInvalid("cannot profile an empty dataset")
	}

	p := &Profile{Source: ds.Source, Rows: ds.Len()}
	values := make([]float64, ds.Len())
	for _, col := range dataset.Columns {
		for i, rec := range ds.Records {
			values[i] = col.Value(rec)
		}
		summary, err := Summarize(col.Name, values)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarise %q", col.Name)
		}
		p.Columns = append(p.Columns, summary)
	}

	p.Raw = CheckBalance(ds.Targets)
	p.Merged = CheckBalance(labels.Merge(ds.Targets, mergeTable))

	log.Printf("[Profiler] Profiled %d rows x %d columns in %.2fms",
		p.Rows, len(p.Columns), float64(time.Since(start).Nanoseconds())/1e6)
	return p, nil
}

// WriteText prints the profile as aligned tables
func (p *Profile) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Dataset: %s (%d rows)\n\n", p.Source, p.Rows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tmean\tstd\tmin\tq25\tmedian\tq75\tmax\tskew\toutliers\t")
	for _, c := range p.Columns {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n",
			shorten(c.Name, 40), c.Mean, c.StdDev, c.Min, c.Q25, c.Median, c.Q75, c.Max, c.Skewness, c.Outliers)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, section := range []struct {
		title   string
		balance ClassBalance
	}{{"Careers", p.Raw}, {"Careers after merging", p.Merged}} {
		fmt.Fprintf(w, "\n%s:\n", section.title)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range section.balance.Counts {
			fmt.Fprintf(tw, "  %s\t%d\t%.1f%%\n", c.Class, c.Count, c.Share*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		verdict := "balanced"
		if !section.balance.Balanced {
			verdict = "imbalanced"
		}
		fmt.Fprintf(w, "  chi2=%.2f df=%d p=%.4f ratio=%.2f -> %s\n",
			section.balance.ChiSquare, section.balance.DF, section.balance.PValue, section.balance.Ratio, verdict)
	}
	return nil
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
