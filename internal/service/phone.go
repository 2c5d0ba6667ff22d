package service

import "strings"

// NormalizePhone приводит контакт к отображаемой форме.
// Из строки удаляется всё, кроме цифр и ведущего «+»; затем, если цифр
// ровно 11 — группировка 3-4-4, если ровно 10 — группировка 3-3-4,
// иначе возвращается строка цифр как есть.
func NormalizePhone(raw string) string {
	var kept strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			kept.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			kept.WriteRune(r)
		}
	}

	only := strings.TrimPrefix(kept.String(), "+")

	switch len(only) {
	case 11:
		return only[:3] + "-" + only[3:7] + "-" + only[7:]
	case 10:
		return only[:3] + "-" + only[3:6] + "-" + only[6:]
	default:
		return only
	}
}
