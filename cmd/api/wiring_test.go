package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/cddiller/dashboard-api/pkg/config"
	"github.com/cddiller/dashboard-api/pkg/currency"
)

func TestLocale(t *testing.T) {
	tag, rates, code, err := locale(config.LocaleConfig{
		Language: "ru", DefaultCurrency: "USD", RateUSD: 12700, RateEUR: 13500, RateRUB: 140,
	})
	require.NoError(t, err)
	assert.Equal(t, language.Russian, tag)
	assert.Equal(t, currency.USD, code)
	assert.Equal(t, "12700", rates[currency.USD].String())
	assert.Equal(t, "1", rates[currency.UZS].String())
}

func TestLocale_Invalido(t *testing.T) {
	_, _, _, err := locale(config.LocaleConfig{Language: "!!", DefaultCurrency: "UZS"})
	assert.Error(t, err)

	_, _, _, err = locale(config.LocaleConfig{Language: "en", DefaultCurrency: "GBP"})
	assert.Error(t, err)
}
