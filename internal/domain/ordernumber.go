package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order numbers shown outside the system obfuscate the sequential database
// ID: "FX" + yyMMdd + "-" + base36(id + salt). The date part is cosmetic;
// only the base36 part decodes. The salt keeps neighbouring IDs from
// producing guessable neighbouring numbers.
const (
	orderNumberPrefix = "FX"
	orderNumberSalt   = 1140916
)

// EncodeOrderNumber converts a database order ID into its external form,
// e.g. 123 -> "FX250826-OK3P".
func EncodeOrderNumber(id int, now time.Time) string {
	salted := int64(id) + orderNumberSalt
	encoded := strings.ToUpper(strconv.FormatInt(salted, 36))

	return orderNumberPrefix + now.Format("060102") + "-" + encoded
}

// DecodeOrderNumber reverses EncodeOrderNumber. The payment gateway strips
// dashes from merchant trade numbers, so the dash-less form is accepted too.
// A malformed number is a client error, not a lookup miss.
func DecodeOrderNumber(orderNumber string) (int, error) {
	if !strings.HasPrefix(orderNumber, orderNumberPrefix) {
		return 0, fmt.Errorf("invalid order number %q", orderNumber)
	}

	encoded := orderNumber[strings.LastIndex(orderNumber, "-")+1:]
	if !strings.Contains(orderNumber, "-") {
		// Dash-less gateway form: prefix (2) + date (6), rest is payload.
		if len(orderNumber) <= 8 {
			return 0, fmt.Errorf("invalid order number %q", orderNumber)
		}
		encoded = orderNumber[8:]
	}

	salted, err := strconv.ParseInt(strings.ToLower(encoded), 36, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order number %q: %w", orderNumber, err)
	}

	id := salted - orderNumberSalt
	if id <= 0 {
		return 0, fmt.Errorf("invalid order number %q", orderNumber)
	}

	return int(id), nil
}
