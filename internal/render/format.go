package render

import (
	"fmt"
	"strconv"
	"strings"
)

// fmtRate renders BA/OBP/SLG/OPS in the conventional three-decimal form
// with the leading zero stripped: .312, or 1.050 for an OPS above one.
func fmtRate(v float64) string {
	if v == 0 {
		return ".000"
	}
	s := fmt.Sprintf("%.3f", v)
	return strings.TrimPrefix(s, "0")
}

// fmtERA renders ERA and WHIP with two decimals and the leading zero kept.
func fmtERA(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// fmtIP renders innings from outs in thirds notation: 270 outs is "90",
// 271 is "90.1", 272 is "90.2".
func fmtIP(outs int) string {
	whole := outs / 3
	switch outs % 3 {
	case 1:
		return strconv.Itoa(whole) + ".1"
	case 2:
		return strconv.Itoa(whole) + ".2"
	default:
		return strconv.Itoa(whole)
	}
}

// fmtAge leaves the column blank when the birth year is unknown.
func fmtAge(age int) string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(age)
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}
