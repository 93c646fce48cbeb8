package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/spam-graph/internal/table"
)

func mustTable(t *testing.T, rows ...[]table.Cell) *table.Table {
	t.Helper()
	tbl, err := table.New(rows)
	require.NoError(t, err)
	return tbl
}

func comment(user, content string, spam bool) []table.Cell {
	return []table.Cell{table.Text(user), table.Text(content), table.Text("video"), table.Flag(spam)}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "plain", token: "apple", want: "apple"},
		{name: "uppercase", token: "APPLE", want: "apple"},
		{name: "punctuation stripped", token: "Wow!!!", want: "wow"},
		{name: "inner punctuation", token: "don't", want: "dont"},
		{name: "digits kept", token: "MrCurr3ncY", want: "mrcurr3ncy"},
		{name: "only punctuation", token: "?!.", want: ""},
		{name: "empty", token: "", want: ""},
		{name: "cyrillic", token: "Сергей,", want: "сергей"},
		{name: "url", token: "http://youtu.be/x", want: "httpyoutubex"},
		{name: "devanagari vowel signs", token: "हिंदी", want: "हिंदी"},
		{name: "thai vowel signs", token: "ดี!", want: "ดี"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.token))
		})
	}
}

func TestExtract_UnionsWordsPerUser(t *testing.T) {
	tbl := mustTable(t,
		comment("Sara", "Pay me", true),
		comment("John", "I love  this video", false),
		comment("Sara", "This is cool!", false),
	)

	users, v, err := Extract(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sara", "John"}, users)
	assert.Equal(t, []string{"cool", "is", "me", "pay", "this"}, Sorted(v["Sara"]))
	assert.Equal(t, []string{"i", "love", "this", "video"}, Sorted(v["John"]))
}

func TestExtract_IdentityIsCaseSensitive(t *testing.T) {
	tbl := mustTable(t,
		comment("sara", "one", false),
		comment("Sara", "two", false),
	)

	users, v, err := Extract(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"sara", "Sara"}, users)
	assert.True(t, v["sara"].Contains("one"))
	assert.False(t, v["sara"].Contains("two"))
}

func TestExtract_EmptyVocabularyStillListed(t *testing.T) {
	tbl := mustTable(t, comment("Jei", "!!! ???", false))

	users, v, err := Extract(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jei"}, users)
	assert.Equal(t, 0, v["Jei"].Cardinality())
}

func TestExtract_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		row  []table.Cell
	}{
		{
			name: "flag identity",
			row:  []table.Cell{table.Flag(true), table.Text("x"), table.Text("v"), table.Flag(false)},
		},
		{
			name: "flag content",
			row:  []table.Cell{table.Text("Sara"), table.Flag(true), table.Text("v"), table.Flag(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Extract(mustTable(t, tt.row))
			assert.ErrorIs(t, err, table.ErrTypeMismatch)
		})
	}
}

func TestExtract_EmptyTable(t *testing.T) {
	users, v, err := Extract(mustTable(t))
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, v)
}
