package spam

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/spam-graph/internal/graph"
	"github.com/hurou927/spam-graph/internal/table"
	"github.com/hurou927/spam-graph/internal/vocab"
)

func comment(user, content, video string, isSpam bool) []table.Cell {
	return []table.Cell{table.Text(user), table.Text(content), table.Text(video), table.Flag(isSpam)}
}

func syntheticTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([][]table.Cell{
		comment("Sara", "Pay me", "Video1", true),
		comment("John", "Pay me", "Video1", true),
		comment("Teah", "I love this video", "Video1", false),
		comment("Jei", "Awesome", "Video1", false),
		comment("Maya", "Subscribe to me", "Video1", true),
		comment("Sara", "This is cool", "Video2", false),
		comment("Veri", "Wow!", "Video2", false),
		comment("Veri", "Pay me", "Video3", true),
	})
	require.NoError(t, err)
	return tbl
}

func TestFindSpam_FirstSeenOrder(t *testing.T) {
	tbl := syntheticTable(t)
	users, _, err := vocab.Extract(tbl)
	require.NoError(t, err)

	count, spammers, err := FindSpam(tbl, users)
	require.NoError(t, err)

	assert.Equal(t, 4, count)
	assert.Equal(t, []string{"Sara", "John", "Maya", "Veri"}, spammers)
	assert.LessOrEqual(t, count, len(users))
}

func TestFindSpam_UniverseRestricts(t *testing.T) {
	tbl := syntheticTable(t)

	count, spammers, err := FindSpam(tbl, []string{"Maya", "Veri", "Teah"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"Maya", "Veri"}, spammers)

	count, spammers, err = FindSpam(tbl, []string{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, spammers)
}

func TestFindSpam_NilUniverse(t *testing.T) {
	count, _, err := FindSpam(syntheticTable(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestFindSpam_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		row  []table.Cell
	}{
		{
			name: "text label",
			row:  []table.Cell{table.Text("Sara"), table.Text("x"), table.Text("v"), table.Text("1")},
		},
		{
			name: "flag identity",
			row:  []table.Cell{table.Flag(true), table.Text("x"), table.Text("v"), table.Flag(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := table.New([][]table.Cell{tt.row})
			require.NoError(t, err)

			_, _, err = FindSpam(tbl, nil)
			assert.ErrorIs(t, err, table.ErrTypeMismatch)
		})
	}
}

func TestCountSpamComments(t *testing.T) {
	n, err := CountSpamComments(syntheticTable(t))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestBestSpammers(t *testing.T) {
	tests := []struct {
		name string
		adj  graph.Adjacency
		want []string
	}{
		{
			name: "empty",
			adj:  graph.Adjacency{},
			want: nil,
		},
		{
			name: "tie at degree three",
			adj: graph.Adjacency{
				"a": {"b", "c", "d"},
				"b": {"a", "c", "e"},
				"c": {"a", "b"},
				"d": {"a"},
				"e": {"b"},
			},
			want: []string{"a", "b"},
		},
		{
			name: "single winner",
			adj: graph.Adjacency{
				"hub": {"x", "y"},
				"x":   {"hub"},
				"y":   {"hub"},
			},
			want: []string{"hub"},
		},
		{
			name: "all isolated",
			adj:  graph.Adjacency{"a": {}, "b": {}},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, BestSpammers(tt.adj).ToSlice())
		})
	}
}

func TestWords(t *testing.T) {
	v := vocab.Vocabulary{
		"a": vocab.NewWordSet("pay", "me"),
		"b": vocab.NewWordSet("me", "now"),
		"c": vocab.NewWordSet("other"),
	}
	got := Words(mapset.NewThreadUnsafeSet("a", "b", "ghost"), v)
	assert.Equal(t, []string{"me", "now", "pay"}, vocab.Sorted(got))
}
