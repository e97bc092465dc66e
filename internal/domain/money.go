package domain

import "strconv"

// Rupees is a whole-rupee amount. Prices are stored and displayed in major
// units; there is no paise component anywhere in the catalog.
type Rupees int64

// String renders the amount with the ₹ sign and Indian digit grouping
// (last three digits, then pairs): 185000 -> ₹1,85,000.
func (r Rupees) String() string {
	n := int64(r)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "₹" + groupIndian(strconv.FormatInt(n, 10))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var out []byte
	// leading group is one digit when head has odd length
	first := len(head) % 2
	if first == 1 {
		out = append(out, head[0])
	}
	for i := first; i < len(head); i += 2 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, head[i:i+2]...)
	}
	return string(out) + "," + tail
}

// BasisPoints is a percentage scaled by 100 (500 = 5%).
type BasisPoints int64

// Of applies the rate to amount, rounding half up to the nearest rupee.
func (b BasisPoints) Of(amount Rupees) Rupees {
	return Rupees((int64(amount)*int64(b) + 5000) / 10000)
}

func (b BasisPoints) String() string {
	whole, frac := int64(b)/100, int64(b)%100
	if frac == 0 {
		return strconv.FormatInt(whole, 10) + "%"
	}
	s := strconv.FormatFloat(float64(b)/100, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s + "%"
}
