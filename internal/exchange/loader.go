package exchange

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"balances/internal/logger"
	"balances/internal/money"
)

var rateEntryPattern = regexp.MustCompile(`^([A-Z]{3}):(\d+(?:\.\d+)?)$`)

var baseRate = decimal.NewFromInt(1)

// RateLoader parses rate lists such as "EUR:1,USD:0.987,GBP:0.878"
// into a RateTable. The entry whose rate is exactly 1 is the base currency.
type RateLoader struct {
	formatter *money.Formatter
	log       zerolog.Logger
}

// NewRateLoader creates a loader validating currency codes through formatter.
func NewRateLoader(formatter *money.Formatter) *RateLoader {
	return &RateLoader{
		formatter: formatter,
		log:       logger.WithComponent("rate-loader"),
	}
}

// Load parses input and records every entry in table. It stops at the first
// malformed entry, unknown currency or second base currency.
func (l *RateLoader) Load(table *RateTable, input string) error {
	hasBase := false

	for _, entry := range strings.Split(input, ",") {
		matches := rateEntryPattern.FindStringSubmatch(entry)
		if matches == nil {
			return &RateEntryError{Entry: entry}
		}

		currency, err := l.formatter.CurrencyFromCode(matches[1])
		if err != nil {
			return err
		}

		rate, err := decimal.NewFromString(matches[2])
		if err != nil {
			return fmt.Errorf("%w: %v", &RateEntryError{Entry: entry}, err)
		}

		if rate.Truncate(Scale).Equal(baseRate) {
			if hasBase {
				return ErrDuplicateBaseCurrency
			}
			table.SetBaseCurrency(currency)
			hasBase = true
			continue
		}

		table.SetRate(currency, rate)
	}

	l.log.Debug().
		Bool("has_base", hasBase).
		Int("rates", table.Len()).
		Msg("Exchange rates loaded")

	return nil
}
