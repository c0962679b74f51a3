package money

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Numbers(t *testing.T) {
	p := Parse(float64(450000))
	require.NotNil(t, p)
	assert.Equal(t, 450000.0, *p)

	p = Parse(15000)
	require.NotNil(t, p)
	assert.Equal(t, 15000.0, *p)

	p = Parse(int64(7))
	require.NotNil(t, p)
	assert.Equal(t, 7.0, *p)
}

func TestParse_LocalizedStrings(t *testing.T) {
	cases := map[string]float64{
		"450 000":     450000,
		"450 000,50":  450000.50,
		"450000.50 ₽": 450000.50,
		"1'500'000":   1500000,
		"  15000  ":   15000,
		"25000 руб":   25000,
		"-150":        -150,
		"+300":        300,
		"0":           0,
	}
	for in, want := range cases {
		p := Parse(in)
		require.NotNil(t, p, "input %q", in)
		assert.Equal(t, want, *p, "input %q", in)
	}
}

func TestParse_NoData(t *testing.T) {
	for _, in := range []interface{}{nil, true, false, "", "нет данных", "---", map[string]interface{}{}, []interface{}{1}} {
		assert.Nil(t, Parse(in), "input %v", in)
	}
}

func TestParse_NonFinite(t *testing.T) {
	assert.Nil(t, Parse(math.NaN()))
	assert.Nil(t, Parse(math.Inf(1)))
}

// Formatting a number the usual RU way and feeding it back returns the same
// number.
func TestParse_RoundTrip(t *testing.T) {
	for _, v := range []float64{15000, 450000.5, 999.99, 1} {
		formatted := fmt.Sprintf("%.2f ₽", v)
		p := Parse(formatted)
		require.NotNil(t, p)
		assert.Equal(t, v, *p)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10000.0, Round2(10000.004))
}
