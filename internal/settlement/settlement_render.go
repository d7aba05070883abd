package settlement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const paymentLabel = "Pago Nomina"

const stampLayout = "20060102"

// Line is one paid employee in a bank file.
type Line struct {
	CI            string
	FullName      string
	AccountNumber string
	AccountType   string
	NetSalary     decimal.Decimal
}

// fieldReplacer keeps free text from breaking the record layout.
var fieldReplacer = strings.NewReplacer(";", " ", "\r", " ", "\n", " ")

func field(s string) string {
	return strings.TrimSpace(fieldReplacer.Replace(s))
}

// Render produces the bank file body:
//
//	<bank_code>;<YYYYMMDD>
//	<ci>;<name surnames>;<account>;<type>;<net>;Pago Nomina
func Render(bankCode string, runDate time.Time, lines []Line) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s;%s\n", field(bankCode), runDate.Format(stampLayout))
	for _, l := range lines {
		fmt.Fprintf(&b, "%s;%s;%s;%s;%s;%s\n",
			field(l.CI),
			field(l.FullName),
			field(l.AccountNumber),
			field(l.AccountType),
			l.NetSalary.StringFixed(2),
			paymentLabel,
		)
	}
	return []byte(b.String())
}

// FileName is <bank_code>_<YYYYMMDD>.txt. One file per bank and day.
func FileName(bankCode string, runDate time.Time) string {
	return fmt.Sprintf("%s_%s.txt", field(bankCode), runDate.Format(stampLayout))
}
