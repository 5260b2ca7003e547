package notify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Domenick1991/airticket/internal/domain"
)

const vietQRBase = "https://img.vietqr.io/image"

// PaymentQRURL builds the VietQR image link for a transfer of amount to the
// configured account, with the booking code as the transfer description.
// The branch field holds the VietQR bank id.
func PaymentQRURL(bank domain.BankConfig, amount float64, bookingCode string) string {
	return fmt.Sprintf("%s/%s-%s-qr_only.png?amount=%s&addInfo=%s&accountName=%s",
		vietQRBase,
		bank.Branch,
		bank.Account,
		strconv.FormatFloat(amount, 'f', -1, 64),
		escapeComponent(bookingCode),
		escapeComponent(strings.ToUpper(bank.Name)),
	)
}

// escapeComponent encodes spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
