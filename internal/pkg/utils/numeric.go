package utils

import (
	"strconv"
	"strings"
)

// ParseNullableFloat разбирает числовое поле, которое upstream может вернуть
// пустой строкой или не вернуть вовсе. nil означает "значение отсутствует" -
// для площадей и этажности это не то же самое, что ноль.
func ParseNullableFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseNullableInt - то же самое для целочисленных полей (этажи, семьи).
func ParseNullableInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// PadLotNumber нормализует номер участка до 4 знаков с ведущими нулями.
// Пустая строка и "0" означают отсутствие номера и становятся "0000".
func PadLotNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return "0000"
	}
	if len(s) >= 4 {
		return s
	}
	return strings.Repeat("0", 4-len(s)) + s
}
