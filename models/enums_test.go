package models

import "testing"

func TestCountryValid(t *testing.T) {
	for _, c := range []Country{CountryAU, CountryUS, CountryUK, CountryJP, CountryVN} {
		if !c.Valid() {
			t.Errorf("country %q should be valid", c)
		}
	}
	if Country("DE").Valid() {
		t.Error("unknown country should be invalid")
	}
	if Country("").Valid() {
		t.Error("empty country should be invalid")
	}
}

func TestGenreValid(t *testing.T) {
	for _, g := range []Genre{GenreRPG, GenreFPS, GenreStrategy, GenrePuzzle, GenreSports} {
		if !g.Valid() {
			t.Errorf("genre %q should be valid", g)
		}
	}
	if Genre("Horror").Valid() {
		t.Error("unknown genre should be invalid")
	}
	if Genre("rpg").Valid() {
		t.Error("genre validation should be case sensitive")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCreditCard, PaymentPayPal, PaymentCrypto, PaymentBankTransfer} {
		if !m.Valid() {
			t.Errorf("payment method %q should be valid", m)
		}
	}
	if PaymentMethod("cash").Valid() {
		t.Error("unknown payment method should be invalid")
	}
}
