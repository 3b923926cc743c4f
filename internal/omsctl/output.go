package omsctl

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

func (a *App) printYaml(v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "error marshalling output")
	}
	_, err = a.Out.Write(b)
	return err
}

// table writes aligned, tab separated rows below an upper-case header.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, header ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 1, 1, 2, ' ', 0)}
	t.row(strings.ToUpper(strings.Join(header, "\t")))
	return t
}

func (t *table) row(cells ...interface{}) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func optionalInt(i *int) string {
	if i == nil {
		return "-"
	}
	return fmt.Sprint(*i)
}
