package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/table"
)

// Writer writes a comment table as COPY-format SQL that recreates the
// table the PostgreSQL loader reads.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new COPY output writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes BEGIN.
func (cw *Writer) WriteHeader() error {
	_, err := fmt.Fprintln(cw.w, "BEGIN;")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cw.w)
	return err
}

// WriteFooter writes COMMIT.
func (cw *Writer) WriteFooter() error {
	_, err := fmt.Fprintln(cw.w, "COMMIT;")
	return err
}

// WriteTable writes a CREATE TABLE IF NOT EXISTS statement and a COPY block
// holding every row of t. relation may be schema-qualified.
func (cw *Writer) WriteTable(relation string, cols config.Columns, t *table.Table) error {
	name := pgx.Identifier(strings.Split(relation, ".")).Sanitize()
	user := pgx.Identifier{cols.User}.Sanitize()
	content := pgx.Identifier{cols.Content}.Sanitize()
	video := pgx.Identifier{cols.Video}.Sanitize()
	label := pgx.Identifier{cols.Label}.Sanitize()

	_, err := fmt.Fprintf(cw.w, "CREATE TABLE IF NOT EXISTS %s (\n    %s text NOT NULL,\n    %s text NOT NULL,\n    %s text NOT NULL,\n    %s boolean NOT NULL\n);\n\n",
		name, user, content, video, label)
	if err != nil {
		return err
	}

	if t.Len() == 0 {
		return nil
	}

	_, err = fmt.Fprintf(cw.w, "COPY %s (%s, %s, %s, %s) FROM stdin;\n", name, user, content, video, label)
	if err != nil {
		return err
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		vals := make([]string, len(row))
		for j, c := range row {
			vals[j] = EscapeCopyValue(c)
		}
		_, err := fmt.Fprintln(cw.w, strings.Join(vals, "\t"))
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cw.w, `\.`)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cw.w)
	return err
}

// Dump writes t as a complete transaction.
func (cw *Writer) Dump(relation string, cols config.Columns, t *table.Table) error {
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteTable(relation, cols, t); err != nil {
		return fmt.Errorf("writing %s: %w", relation, err)
	}
	return cw.WriteFooter()
}
