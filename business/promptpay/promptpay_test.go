package promptpay

import (
	"errors"
	"strings"
	"testing"

	"shirtshop/domain"
)

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE check value
	if got := crc16("123456789"); got != "29B1" {
		t.Fatalf("crc16(123456789) = %s, want 29B1", got)
	}
}

func TestBuildPayloadPhoneTarget(t *testing.T) {
	payload, err := BuildPayload("081-234-5678", 10000, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	if !strings.HasPrefix(payload, "000201") {
		t.Errorf("payload must start with the format indicator, got %q", payload[:8])
	}
	if !strings.Contains(payload, "010212") {
		t.Errorf("dynamic payload must carry initiation method 12: %q", payload)
	}
	if !strings.Contains(payload, "0016A000000677010111") {
		t.Errorf("missing PromptPay AID: %q", payload)
	}
	// Leading zero dropped, 0066 country prefix, tag 01.
	if !strings.Contains(payload, "01130066812345678") {
		t.Errorf("phone target not converted to international form: %q", payload)
	}
	if !strings.Contains(payload, "5303764") {
		t.Errorf("missing THB currency field: %q", payload)
	}
	if !strings.Contains(payload, "5406100.00") {
		t.Errorf("amount not encoded as 2-decimal baht: %q", payload)
	}
	if !strings.Contains(payload, "5802TH") {
		t.Errorf("missing country code: %q", payload)
	}
	if !strings.Contains(payload, "5910STYLEWHERE") {
		t.Errorf("merchant name not uppercased ASCII: %q", payload)
	}
	if !strings.Contains(payload, "6007BANGKOK") {
		t.Errorf("merchant city not uppercased ASCII: %q", payload)
	}
}

func TestBuildPayloadNationalIDTarget(t *testing.T) {
	payload, err := BuildPayload("1234567890123", 5000, false)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	if !strings.Contains(payload, "02131234567890123") {
		t.Errorf("13-digit target must encode as national id sub-field: %q", payload)
	}
	if !strings.Contains(payload, "010211") {
		t.Errorf("static payload must carry initiation method 11: %q", payload)
	}
}

func TestBuildPayloadWalletTarget(t *testing.T) {
	payload, err := BuildPayload("004999000288", 5000, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	if !strings.Contains(payload, "0312004999000288") {
		t.Errorf("non-phone non-id target must encode as e-wallet sub-field: %q", payload)
	}
}

func TestBuildPayloadDeterministic(t *testing.T) {
	a, err := BuildPayload("0812345678", 55050, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	b, err := BuildPayload("0812345678", 55050, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if a != b {
		t.Errorf("payload not deterministic:\n%s\n%s", a, b)
	}

	c, err := BuildPayload("0812345678", 55051, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if a == c {
		t.Errorf("one-satang amount change must change the payload")
	}
	if a[len(a)-4:] == c[len(c)-4:] {
		t.Errorf("one-satang amount change must change the checksum")
	}
}

func TestBuildPayloadCRCRoundTrip(t *testing.T) {
	payload, err := BuildPayload("0812345678", 123456, true)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	body, crc := payload[:len(payload)-4], payload[len(payload)-4:]
	if !strings.HasSuffix(body, "6304") {
		t.Fatalf("payload body must end with the 6304 trailer prefix: %q", body)
	}
	if got := crc16(body); got != crc {
		t.Errorf("crc16(body) = %s, payload carries %s", got, crc)
	}
}

func TestBuildPayloadRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []int{0, -1, -100} {
		if _, err := BuildPayload("0812345678", amount, true); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("amount %d: want ErrValidation, got %v", amount, err)
		}
	}
}

func TestFormatBaht(t *testing.T) {
	cases := map[int]string{
		10000:  "100.00",
		55050:  "550.50",
		1:      "0.01",
		123456: "1234.56",
	}
	for satang, want := range cases {
		if got := formatBaht(satang); got != want {
			t.Errorf("formatBaht(%d) = %s, want %s", satang, got, want)
		}
	}
}

func TestSanitizeASCIIUpper(t *testing.T) {
	if got := sanitizeASCIIUpper("ร้านเสื้อ", 25); got != "NA" {
		t.Errorf("all non-ASCII input must fall back to placeholder, got %q", got)
	}
	if got := sanitizeASCIIUpper("  my shop ไทย  ", 25); got != "MY SHOP" {
		t.Errorf("sanitize = %q, want MY SHOP", got)
	}
	if got := sanitizeASCIIUpper("abcdefghijklmnopqrstuvwxyz", 10); got != "ABCDEFGHIJ" {
		t.Errorf("sanitize must cap length, got %q", got)
	}
}

func TestFallbackURL(t *testing.T) {
	got := FallbackURL("081-234-5678", 55050, 360)
	want := "https://promptpay.io/0812345678.png?amount=550.50&size=360"
	if got != want {
		t.Errorf("FallbackURL = %s, want %s", got, want)
	}
}
