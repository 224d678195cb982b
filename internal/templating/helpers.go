package templating

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// helpers is the closed set of formatting functions a template may call as
// {{helperName path}}. Each helper is pure; a value it cannot format is
// returned unchanged so a bad record never breaks rendering.
var helpers = map[string]func(any) string{
	"formatMoney": formatMoney,
	"formatDate":  formatDate,
	"formatCPF":   formatCPF,
	"formatCNPJ":  formatCNPJ,
	"formatCEP":   formatCEP,
}

// formatMoney renders a number as Brazilian currency: R$ 1.500,50.
func formatMoney(v any) string {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return t
		}
		f = parsed
	default:
		return stringify(v)
	}
	negative := f < 0
	if negative {
		f = -f
	}
	cents := int64(f*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(groups, "."), frac)
}

// formatDate renders an ISO date (or time.Time) as DD/MM/YYYY.
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("02/01/2006")
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format("02/01/2006")
			}
		}
		return t
	default:
		return stringify(v)
	}
}

// formatCPF renders an 11-digit string as ###.###.###-##.
func formatCPF(v any) string {
	s := digitsOf(v)
	if len(s) != 11 {
		return stringify(v)
	}
	return fmt.Sprintf("%s.%s.%s-%s", s[0:3], s[3:6], s[6:9], s[9:11])
}

// formatCNPJ renders a 14-digit string as ##.###.###/####-##.
func formatCNPJ(v any) string {
	s := digitsOf(v)
	if len(s) != 14 {
		return stringify(v)
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", s[0:2], s[2:5], s[5:8], s[8:12], s[12:14])
}

// formatCEP renders an 8-digit string as #####-###.
func formatCEP(v any) string {
	s := digitsOf(v)
	if len(s) != 8 {
		return stringify(v)
	}
	return fmt.Sprintf("%s-%s", s[0:5], s[5:8])
}

func digitsOf(v any) string {
	var sb strings.Builder
	for _, r := range stringify(v) {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
