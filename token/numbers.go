package token

// ScanNumber measures the JSON number literal at the start of d.
//
// neg reports a leading minus sign and float reports a fraction or an
// exponent part. The literal ends at the first byte that cannot continue it;
// callers decide whether that byte may follow a number.
func ScanNumber(d []byte) (n int, neg, float bool, err error) {
	if len(d) > 0 && d[0] == '-' {
		neg = true
		n = 1
	}
	digits := asciiDigits(d[n:])
	if digits == 0 {
		return 0, neg, false, posErr(n, ErrNumber)
	}
	if digits > 1 && d[n] == '0' {
		return 0, neg, false, posErr(n, ErrNumberLeadingZero)
	}
	n += digits
	f, err := fract(d[n:])
	if err != nil {
		return 0, neg, false, offsetErr(err, n)
	}
	n += f
	e, err := exp(d[n:])
	if err != nil {
		return 0, neg, false, offsetErr(err, n)
	}
	n += e
	return n, neg, f+e > 0, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func exp(d []byte) (int, error) {
	if len(d) == 0 {
		return 0, nil
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0, nil
	}
	i := 1
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		i++
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0, posErr(i, ErrNumber)
	}
	return n + i, nil
}

func fract(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '.' {
		return 0, nil
	}
	n := asciiDigits(d[1:])
	if n == 0 {
		// . must be followed by 1 or more digits rfc 8259
		return 0, posErr(1, ErrNumber)
	}
	return n + 1, nil
}

func offsetErr(err error, off int) error {
	if pe, ok := err.(*PosErr); ok {
		return &PosErr{Off: pe.Off + off, Err: pe.Err}
	}
	return err
}
