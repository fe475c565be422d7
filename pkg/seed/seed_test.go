package seed

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voidshard/easel/pkg/structs"
)

func TestParse(t *testing.T) {
	cases := []struct {
		Name     string
		Given    string
		Expect   uint64
		Negative bool
		OK       bool
	}{
		{"Positive", "42", 42, false, true},
		{"Negative", "-42", 42, true, true},
		{"NegativeZero", "-0", 0, false, true},
		{"Plus", "+7", 7, false, true},
		{"Whitespace", "  99 ", 99, false, true},
		{"MaxUint64", "18446744073709551615", 18446744073709551615, false, true},
		{"IntegralFloat", "12.0", 12, false, true},
		{"Fraction", "12.5", 0, false, false},
		{"Garbage", "abc", 0, false, false},
		{"Empty", "", 0, false, false},
		{"DoubleSign", "--5", 0, false, false},
		{"Overflow", "18446744073709551616", 0, false, false},
		{"Inf", "inf", 0, false, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			v, neg, ok := Parse(c.Given)
			assert.Equal(t, c.OK, ok)
			assert.Equal(t, c.Expect, v)
			assert.Equal(t, c.Negative, neg)
		})
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		Name         string
		Given        structs.InputValue
		Random       bool
		ExpectSource Source
		ExpectSeed   uint64 // only checked for SourceUser
		ExpectFlip   bool
	}{
		{"NegativeSeed", structs.Number(-42), false, SourceUser, 42, true},
		{"NegativeSeedText", structs.Text("-7"), false, SourceUser, 7, true},
		{"OptionSeed", structs.Choice("Lucky", "1234"), false, SourceUser, 1234, false},
		{"Unparseable", structs.Text("abc"), false, SourceIgnored, 0, false},
		{"Missing", structs.InputValue{}, false, SourceRandom, 0, false},
		{"RandomRequested", structs.Number(5), true, SourceRandom, 0, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := NewWithSource(rand.NewPCG(1, 2))

			res := r.Resolve(c.Given, c.Random)

			assert.Equal(t, c.ExpectSource, res.Source)
			assert.Equal(t, c.ExpectFlip, res.Flipped)
			assert.LessOrEqual(t, res.Seed, MaxRandom)
			if c.ExpectSource == SourceUser {
				assert.Equal(t, c.ExpectSeed, res.Seed)
			}
		})
	}
}

func TestResolveUserSeedAboveRandomCeiling(t *testing.T) {
	r := New()

	res := r.Resolve(structs.Text("18446744073709551615"), false)

	assert.Equal(t, SourceUser, res.Source)
	assert.Equal(t, uint64(18446744073709551615), res.Seed)
}

func TestRandomIsDeterministicForSource(t *testing.T) {
	a := NewWithSource(rand.NewPCG(7, 7))
	b := NewWithSource(rand.NewPCG(7, 7))

	for i := 0; i < 10; i++ {
		x := a.Random()
		assert.Equal(t, x, b.Random())
		assert.LessOrEqual(t, x, MaxRandom)
	}
}
