package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balances/internal/money"
)

func newTable(base money.Currency, rates map[money.Currency]string) *RateTable {
	table := NewRateTable()
	if base != "" {
		table.SetBaseCurrency(base)
	}
	for c, r := range rates {
		table.SetRate(c, decimal.RequireFromString(r))
	}
	return table
}

func TestExchangeSameCurrencyIsIdentity(t *testing.T) {
	// no base and no rates: identity must not consult the table
	exchanger := NewExchanger(NewRateTable(), money.NewISORegistry())

	for _, c := range []money.Currency{"BGN", "USD", "JPY"} {
		value := money.NewFromInt(12345, c)
		result, err := exchanger.Exchange(value, c)
		require.NoError(t, err)
		assert.True(t, value.Equals(result))
	}
}

func TestExchangeToBaseCurrency(t *testing.T) {
	table := newTable("BGN", map[money.Currency]string{"EUR": "0.51"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	result, err := exchanger.Exchange(money.NewFromInt(100, "EUR"), "BGN")
	require.NoError(t, err)
	assert.Equal(t, "196", result.Amount().String())
	assert.Equal(t, money.Currency("BGN"), result.Currency())
}

func TestExchangeFromBaseCurrency(t *testing.T) {
	table := newTable("BGN", map[money.Currency]string{"EUR": "0.51"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	result, err := exchanger.Exchange(money.NewFromInt(100, "BGN"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "51", result.Amount().String())
	assert.Equal(t, money.Currency("EUR"), result.Currency())
}

func TestExchangeBetweenNonBaseCurrencies(t *testing.T) {
	table := newTable("EUR", map[money.Currency]string{"BGN": "1.95583", "GBP": "0.86"})

	exchanger := NewExchanger(table, money.NewISORegistry())
	result, err := exchanger.Exchange(money.NewFromInt(100, "BGN"), "GBP")
	require.NoError(t, err)
	assert.Equal(t, "44", result.Amount().String())
	assert.Equal(t, money.Currency("GBP"), result.Currency())

	truncating := NewExchanger(table, money.NewISORegistry(), WithRounding(money.RoundDown))
	result, err = truncating.Exchange(money.NewFromInt(100, "BGN"), "GBP")
	require.NoError(t, err)
	assert.Equal(t, "43", result.Amount().String())
}

func TestExchangeRescalesSubunits(t *testing.T) {
	table := newTable("EUR", map[money.Currency]string{"JPY": "160.5"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	// 10.00 EUR -> 1605 JPY
	result, err := exchanger.Exchange(money.NewFromInt(1000, "EUR"), "JPY")
	require.NoError(t, err)
	assert.Equal(t, "1605", result.Amount().String())

	// 1605 JPY -> 10.00 EUR
	result, err = exchanger.Exchange(money.NewFromInt(1605, "JPY"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1000", result.Amount().String())
}

func TestExchangeRoundTripWithinOneSubunit(t *testing.T) {
	registry := money.NewISORegistry()
	rates := []string{"0.987", "0.878", "1.95583", "0.51", "1.0553", "3.3333333"}

	for _, r := range rates {
		table := newTable("EUR", map[money.Currency]string{"USD": r})
		for _, mode := range []money.RoundingMode{money.RoundHalfUp, money.RoundDown} {
			exchanger := NewExchanger(table, registry, WithRounding(mode))
			for _, amount := range []int64{0, 1, 99, 100, 12345, 987654321} {
				value := money.NewFromInt(amount, "EUR")

				there, err := exchanger.Exchange(value, "USD")
				require.NoError(t, err)
				back, err := exchanger.Exchange(there, "EUR")
				require.NoError(t, err)

				diff := back.Amount().Sub(value.Amount()).Abs()
				// one subunit of the intermediate currency, expressed in the source
				tolerance := decimal.NewFromInt(1).Add(decimal.NewFromInt(1).Div(decimal.RequireFromString(r))).Ceil()
				assert.True(t, diff.LessThanOrEqual(tolerance),
					"rate %s amount %d: got %s back", r, amount, back.Amount())
			}
		}
	}
}

func TestExchangeMissingBaseCurrency(t *testing.T) {
	table := newTable("", map[money.Currency]string{"USD": "0.987"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	_, err := exchanger.Exchange(money.NewFromInt(100, "USD"), "EUR")
	assert.ErrorIs(t, err, ErrMissingBaseCurrency)
	assert.EqualError(t, err, "Base currency not provided!")
}

func TestExchangeMissingRate(t *testing.T) {
	table := newTable("EUR", map[money.Currency]string{"USD": "0.987", "GBP": "0.878"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	_, err := exchanger.Exchange(money.NewFromInt(40000, "RUB"), "USD")
	require.ErrorIs(t, err, ErrMissingExchangeRate)
	assert.EqualError(t, err, "Missing RUB currency exchange rate")

	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, money.Currency("RUB"), missing.Currency)

	_, err = exchanger.Exchange(money.NewFromInt(40000, "USD"), "BGN")
	assert.EqualError(t, err, "Missing BGN currency exchange rate")
}

func TestExchangeZeroRate(t *testing.T) {
	table := newTable("EUR", map[money.Currency]string{"USD": "0"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	_, err := exchanger.Exchange(money.NewFromInt(100, "USD"), "EUR")
	assert.ErrorIs(t, err, ErrInvalidExchangeRate)

	// converting into a zero rated currency is allowed and yields zero
	result, err := exchanger.Exchange(money.NewFromInt(100, "EUR"), "USD")
	require.NoError(t, err)
	assert.True(t, result.IsZero())
}

func TestRateIsTruncatedToScale(t *testing.T) {
	table := newTable("EUR", map[money.Currency]string{"USD": "0.987", "GBP": "0.878"})
	exchanger := NewExchanger(table, money.NewISORegistry())

	rate, err := exchanger.Rate("GBP", "USD")
	require.NoError(t, err)
	assert.Equal(t, "1.12414578587699", rate.String())
}

func TestRateTableKeepsBaseOutOfRates(t *testing.T) {
	table := NewRateTable()
	table.SetRate("EUR", decimal.RequireFromString("0.5"))
	table.SetBaseCurrency("EUR")
	table.SetRate("EUR", decimal.RequireFromString("0.7"))

	_, err := table.Rate("EUR")
	assert.ErrorIs(t, err, ErrMissingExchangeRate)
	assert.Equal(t, 0, table.Len())

	base, err := table.BaseCurrency()
	require.NoError(t, err)
	assert.Equal(t, money.Currency("EUR"), base)
}
