package searchindex

import (
	"testing"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kbsite/internal/suffix"
)

func terms(ts analysis.TokenStream) []string {
	out := make([]string, 0, len(ts))
	for _, tok := range ts {
		out = append(out, string(tok.Term))
	}
	return out
}

func TestSuffixFilter(t *testing.T) {
	f := &suffixFilter{process: suffix.ProcessTerm(2)}
	in := analysis.TokenStream{
		{Term: []byte("hello"), Start: 10, End: 15, Position: 3, Type: analysis.AlphaNumeric},
		{Term: []byte("a"), Start: 16, End: 17, Position: 4, Type: analysis.AlphaNumeric},
	}

	out := f.Filter(in)
	require.Len(t, out, 4)
	for _, tok := range out {
		assert.Equal(t, 3, tok.Position)
		assert.Equal(t, 15, tok.End)
	}
	assert.Equal(t, []string{"hello", "ello", "llo", "lo"}, terms(out))
	assert.Equal(t, 10, out[0].Start)
	assert.Equal(t, 13, out[3].Start)
}

func TestSuffixFilter_DeclinedTermIsKept(t *testing.T) {
	f := &suffixFilter{process: func(string) ([]string, bool) { return nil, false }}
	out := f.Filter(analysis.TokenStream{{Term: []byte("keep"), Start: 0, End: 4, Position: 1}})
	assert.Equal(t, []string{"keep"}, terms(out))
}

func TestSuffixFilterConstructor(t *testing.T) {
	in := func() analysis.TokenStream {
		return analysis.TokenStream{{Term: []byte("hello"), Start: 0, End: 5, Position: 1}}
	}

	f, err := suffixFilterConstructor(map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "ello", "llo", "lo"}, terms(f.Filter(in())))

	f, err = suffixFilterConstructor(map[string]interface{}{"min_length": 3.0}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "ello", "llo"}, terms(f.Filter(in())))

	_, err = suffixFilterConstructor(map[string]interface{}{"min_length": 0}, nil)
	require.Error(t, err)

	_, err = suffixFilterConstructor(map[string]interface{}{"min_length": "two"}, nil)
	require.Error(t, err)
}
