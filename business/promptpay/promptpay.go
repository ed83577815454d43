package promptpay

import (
	"fmt"
	"strings"

	"shirtshop/domain"

	"github.com/pobyzaarif/goshortcute"
	qrcode "github.com/skip2/go-qrcode"
)

// EMV field values fixed for PromptPay.
const (
	aid          = "A000000677010111"
	currencyTHB  = "764"
	countryTH    = "TH"
	merchantName = "StyleWhere"
	merchantCity = "Bangkok"

	maxNameLen = 25
	maxCityLen = 15
)

// tlv serializes one field as {2-digit tag}{2-digit length}{value}.
func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// crc16 implements CRC-16/CCITT-FALSE: poly 0x1021, init 0xFFFF, MSB-first,
// no final XOR. Result is 4 uppercase hex digits.
func crc16(input string) string {
	reg := 0xFFFF
	for _, b := range []byte(input) {
		reg ^= int(b) << 8
		for i := 0; i < 8; i++ {
			if reg&0x8000 != 0 {
				reg = (reg << 1) ^ 0x1021
			} else {
				reg <<= 1
			}
			reg &= 0xFFFF
		}
	}
	return fmt.Sprintf("%04X", reg)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// isPhone matches a Thai local number: 10 digits with a leading zero.
func isPhone(digits string) bool {
	return len(digits) == 10 && digits[0] == '0'
}

// sanitizeASCIIUpper keeps printable ASCII only, trims, uppercases and caps
// the length. Some scanner apps choke on anything else.
func sanitizeASCIIUpper(in string, maxLen int) string {
	var b strings.Builder
	for _, r := range in {
		if r >= 0x20 && r <= 0x7E {
			b.WriteRune(r)
		}
	}
	s := strings.ToUpper(strings.TrimSpace(b.String()))
	if s == "" {
		s = "NA"
	}
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// formatBaht renders satang as a 2-decimal baht string ("55050" -> "550.50").
func formatBaht(satang int) string {
	return fmt.Sprintf("%d.%02d", satang/100, satang%100)
}

// BuildPayload builds the EMV TLV payload for a PromptPay transfer of
// amountSatang to target. The target is classified by its digits: a 10-digit
// string with a leading zero is a local phone number (re-encoded as
// 0066 + the number without its leading zero), an exact 13-digit string is a
// national id, anything else is an e-wallet id.
func BuildPayload(targetRaw string, amountSatang int, dynamic bool) (string, error) {
	if amountSatang <= 0 {
		return "", domain.Validationf("invalid amount: %d", amountSatang)
	}

	digits := onlyDigits(targetRaw)

	// 00: Payload Format Indicator
	pfi := tlv("00", "01")
	// 01: Point of Initiation Method (11=static, 12=dynamic)
	poi := tlv("01", "11")
	if dynamic {
		poi = tlv("01", "12")
	}

	// 29: Merchant Account Information, itself a nested TLV:
	//   00 AID, then 01 phone / 02 national id / 03 e-wallet id
	var sub string
	switch {
	case isPhone(digits):
		sub = tlv("00", aid) + tlv("01", "0066"+digits[1:])
	case len(digits) == 13:
		sub = tlv("00", aid) + tlv("02", digits)
	default:
		sub = tlv("00", aid) + tlv("03", digits)
	}
	mai := tlv("29", sub)

	currency := tlv("53", currencyTHB)
	amount := tlv("54", formatBaht(amountSatang))
	country := tlv("58", countryTH)
	name := tlv("59", sanitizeASCIIUpper(merchantName, maxNameLen))
	city := tlv("60", sanitizeASCIIUpper(merchantCity, maxCityLen))

	// The CRC covers everything built so far including the 6304 trailer
	// prefix itself.
	withoutCRC := pfi + poi + mai + currency + amount + country + name + city + "6304"
	return withoutCRC + crc16(withoutCRC), nil
}

// DataURL renders the payload as a square PNG QR and returns it as an
// embeddable data URL.
func DataURL(payload string, size int) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return "", domain.Upstreamf("qr render failed: %v", err)
	}

	return "data:image/png;base64," + goshortcute.StringtoBase64Encode(string(png)), nil
}

// FallbackURL builds an external image-service URL from the same classified
// digits and amount, used when local rendering fails.
func FallbackURL(targetRaw string, amountSatang, size int) string {
	return fmt.Sprintf("https://promptpay.io/%s.png?amount=%s&size=%d",
		onlyDigits(targetRaw), formatBaht(amountSatang), size)
}
