package common

// WipeByteArray zeroes b in place. Used for passwords once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
