package exchange_test

import (
	"fmt"
	"log"

	"balances/internal/exchange"
	"balances/internal/money"
)

// Example demonstrates loading a rate list and converting through the base currency.
func Example() {
	registry := money.NewISORegistry()
	formatter := money.NewFormatter(registry)

	table := exchange.NewRateTable()
	if err := exchange.NewRateLoader(formatter).Load(table, "EUR:1,USD:0.987,GBP:0.878"); err != nil {
		log.Fatal(err)
	}

	exchanger := exchange.NewExchanger(table, registry)

	total, err := formatter.MoneyFromString("50", "GBP")
	if err != nil {
		log.Fatal(err)
	}

	converted, err := exchanger.Exchange(total, "USD")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %s\n", formatter.Format(converted), converted.Currency())
	// Output:
	// 56.21 USD
}
