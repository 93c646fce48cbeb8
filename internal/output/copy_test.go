package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/table"
)

func TestEscapeCopyValue(t *testing.T) {
	tests := []struct {
		name string
		cell table.Cell
		want string
	}{
		{name: "plain", cell: table.Text("Pay me"), want: "Pay me"},
		{name: "tab and newline", cell: table.Text("a\tb\nc\r"), want: `a\tb\nc\r`},
		{name: "backslash", cell: table.Text(`C:\x`), want: `C:\\x`},
		{name: "unicode", cell: table.Text("Сергей ♥"), want: "Сергей ♥"},
		{name: "true", cell: table.Flag(true), want: "t"},
		{name: "false", cell: table.Flag(false), want: "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeCopyValue(tt.cell))
		})
	}
}

func TestWriter_Dump(t *testing.T) {
	tbl, err := table.New([][]table.Cell{
		{table.Text("Sara"), table.Text("Pay\tme"), table.Text("Video1"), table.Flag(true)},
		{table.Text("John"), table.Text("nice"), table.Text("Video2"), table.Flag(false)},
	})
	require.NoError(t, err)
	cols := config.Columns{User: "author", Content: "content", Video: "video_name", Label: "class"}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Dump("public.comments", cols, tbl))

	want := "BEGIN;\n\n" +
		"CREATE TABLE IF NOT EXISTS \"public\".\"comments\" (\n" +
		"    \"author\" text NOT NULL,\n" +
		"    \"content\" text NOT NULL,\n" +
		"    \"video_name\" text NOT NULL,\n" +
		"    \"class\" boolean NOT NULL\n" +
		");\n\n" +
		"COPY \"public\".\"comments\" (\"author\", \"content\", \"video_name\", \"class\") FROM stdin;\n" +
		"Sara\tPay\\tme\tVideo1\tt\n" +
		"John\tnice\tVideo2\tf\n" +
		"\\.\n\n" +
		"COMMIT;\n"
	assert.Equal(t, want, buf.String())
}

func TestWriter_DumpEmptyTable(t *testing.T) {
	tbl, err := table.New(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Dump("comments", config.Default().Source.Columns, tbl))
	assert.NotContains(t, buf.String(), "COPY")
	assert.Contains(t, buf.String(), `CREATE TABLE IF NOT EXISTS "comments"`)
}
