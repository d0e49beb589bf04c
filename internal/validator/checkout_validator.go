package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	//موبایل ایران: 09 و نه رقم بعدش
	mobileRe = regexp.MustCompile(`^09\d{9}$`)

	//کد پستی دقیقا ده رقم
	postalCodeRe = regexp.MustCompile(`^\d{10}$`)

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizeMobile پیش‌شماره +98 و 0098 را به 0 برمی‌گرداند
// و ارقام فارسی را لاتین می‌کند.
func NormalizeMobile(s string) string {
	s = toLatinDigits(strings.TrimSpace(s))
	if strings.HasPrefix(s, "+98") {
		s = "0" + s[3:]
	} else if strings.HasPrefix(s, "0098") {
		s = "0" + s[4:]
	}
	return s
}

func IsIranianMobile(s string) bool {
	return mobileRe.MatchString(NormalizeMobile(s))
}

func IsPostalCode(s string) bool {
	return postalCodeRe.MatchString(toLatinDigits(strings.TrimSpace(s)))
}

func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// طول بر حسب rune؛ با len بایت‌ها متن فارسی اشتباه شمرده می‌شود
func RuneLenAtLeast(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// NormalizeDigits فاصله‌های دو طرف را حذف و ارقام را لاتین می‌کند.
func NormalizeDigits(s string) string {
	return toLatinDigits(strings.TrimSpace(s))
}

// ارقام فارسی و عربی به لاتین
func toLatinDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
