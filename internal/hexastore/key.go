package hexastore

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// formatKey holds the layout version. Order tags are lowercase letters, so
// a leading zero byte cannot collide with a fact key.
var formatKey = []byte("\x00format")

const formatVersion = "2"

// encodeKey builds the full key of t under order o. t must already be
// normalized.
func encodeKey(o Order, t Triple) []byte {
	c := o.permute(t)
	return appendPrefix(o, c[:]...)
}

// appendPrefix builds the tag followed by the framed leading components.
// With no components it is the prefix of the whole order.
func appendPrefix(o Order, components ...string) []byte {
	size := len(o.Tag())
	for _, c := range components {
		size += binary.MaxVarintLen64 + len(c)
	}
	key := make([]byte, 0, size)
	key = append(key, o.Tag()...)
	for _, c := range components {
		key = binary.AppendUvarint(key, uint64(len(c)))
		key = append(key, c...)
	}
	return key
}

var errMalformedKey = errors.New("malformed key")

// decodeKey parses a key written by encodeKey under order o.
func decodeKey(o Order, key []byte) (Triple, error) {
	tag := o.Tag()
	if len(key) < len(tag) || string(key[:len(tag)]) != tag {
		return Triple{}, fmt.Errorf("%w: want tag %q", errMalformedKey, tag)
	}
	rest := key[len(tag):]

	var c [3]string
	for i := range c {
		n, w := binary.Uvarint(rest)
		if w <= 0 {
			return Triple{}, fmt.Errorf("%w: bad length for component %d", errMalformedKey, i)
		}
		rest = rest[w:]
		if uint64(len(rest)) < n {
			return Triple{}, fmt.Errorf("%w: component %d truncated", errMalformedKey, i)
		}
		c[i] = string(rest[:n])
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return Triple{}, fmt.Errorf("%w: %d trailing bytes", errMalformedKey, len(rest))
	}
	return o.unpermute(c), nil
}
