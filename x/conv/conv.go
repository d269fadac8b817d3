// Package conv formats integers into caller-owned buffers without fmt or
// strconv, so it is safe to use on the device console path.
package conv

// Utoa writes the base-10 form of n into the tail of buf and returns that
// tail. buf should be at least 20 bytes for uint64.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Itoa is Utoa with a leading '-' for negative n.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	s := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(s) - 1
	buf[i] = '-'
	return buf[i:]
}

// U32Hex writes n as 8 upper-case hex digits, zero padded, without "0x".
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	const digits = "0123456789ABCDEF"
	i := len(buf)
	for j := 0; j < 8; j++ {
		i--
		buf[i] = digits[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
