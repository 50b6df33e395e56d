package models

// Country is the set of player countries supported by the platform.
type Country string

const (
	CountryAU Country = "AU"
	CountryUS Country = "US"
	CountryUK Country = "UK"
	CountryJP Country = "JP"
	CountryVN Country = "VN"
)

func (c Country) Valid() bool {
	switch c {
	case CountryAU, CountryUS, CountryUK, CountryJP, CountryVN:
		return true
	}
	return false
}

// Genre is the set of game genres supported by the platform.
type Genre string

const (
	GenreRPG      Genre = "RPG"
	GenreFPS      Genre = "FPS"
	GenreStrategy Genre = "Strategy"
	GenrePuzzle   Genre = "Puzzle"
	GenreSports   Genre = "Sports"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreRPG, GenreFPS, GenreStrategy, GenrePuzzle, GenreSports:
		return true
	}
	return false
}

// PaymentMethod is the set of accepted purchase payment methods.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CreditCard"
	PaymentPayPal       PaymentMethod = "PayPal"
	PaymentCrypto       PaymentMethod = "Crypto"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentPayPal, PaymentCrypto, PaymentBankTransfer:
		return true
	}
	return false
}
