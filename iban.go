package bankx

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// IBANGenerator derives IBANs from snowflake ids, so uniqueness follows from
// id uniqueness.
type IBANGenerator struct {
	Country  string
	BankCode string
}

// Generate builds COUNTRY + check digits + bank code + the zero-padded
// 19-digit id. The store's unique index remains the final guard.
func (g IBANGenerator) Generate(id snowflake.ID) string {
	bban := fmt.Sprintf("%s%019d", strings.ToUpper(g.BankCode), id.Int64())
	check := 98 - mod97(bban+strings.ToUpper(g.Country)+"00")
	return fmt.Sprintf("%s%02d%s", strings.ToUpper(g.Country), check, bban)
}

// NormalizeIBAN returns the electronic form: upper case, no spaces.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
}

// ValidIBAN checks shape and the ISO 13616 mod-97 checksum.
func ValidIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	for _, r := range iban {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return mod97(iban[4:]+iban[:4]) == 1
}

// mod97 interprets s with letters expanded to 10..35, digit by digit, so it
// never overflows.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
		}
	}
	return rem
}
