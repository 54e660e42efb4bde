package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	f := DefaultFormatter
	cases := map[int64]string{
		0:         "$ 0",
		999:       "$ 999",
		1000:      "$ 1.000",
		120000:    "$ 120.000",
		1234567:   "$ 1.234.567",
		-45000:    "-$ 45.000",
		100000000: "$ 100.000.000",
	}
	for in, want := range cases {
		require.Equal(t, want, f.Format(in), "%d", in)
	}

	plain := Formatter{}
	require.Equal(t, "1234567", plain.Format(1234567))
	us := Formatter{Symbol: "USD", Thousands: ","}
	require.Equal(t, "USD 1,234", us.Format(1234))

	require.Equal(t, "+$ 5.000", f.FormatSigned(5000))
	require.Equal(t, "-$ 5.000", f.FormatSigned(-5000))
}

func TestParse(t *testing.T) {
	t.Parallel()
	f := DefaultFormatter

	ok := map[string]int64{
		"1500":      1500,
		" 1.500 ":   1500,
		"$ 120.000": 120000,
		"$45000":    45000,
		"1 000":     1000,
	}
	for in, want := range ok {
		got, err := f.Parse(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	bad := map[string]error{
		"":      ErrEmpty,
		"   ":   ErrEmpty,
		"$":     ErrEmpty,
		"abc":   ErrNotNumber,
		"12abc": ErrNotNumber,
		"0":     ErrNotPositive,
		"-50":   ErrNotPositive,
	}
	for in, want := range bad {
		_, err := f.Parse(in)
		require.ErrorIs(t, err, want, in)
	}

	us := Formatter{Symbol: "$", Thousands: ","}
	_, err := us.Parse("12.50")
	require.ErrorIs(t, err, ErrFractional)
	got, err := us.Parse("1,250")
	require.NoError(t, err)
	require.Equal(t, int64(1250), got)

	_, err = f.Parse("99999999999999999999999")
	require.ErrorIs(t, err, ErrNotNumber)
}

func TestPercent(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0.0, Percent(10, 0))
	require.Equal(t, 0.0, Percent(10, -5))
	require.Equal(t, 0.0, Percent(-10, 100))
	require.Equal(t, 50.0, Percent(50, 100))
	require.Equal(t, 100.0, Percent(150, 100))
	require.InDelta(t, 33.3333, Percent(1, 3), 0.0001)
}
