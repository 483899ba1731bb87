// Package hexastore persists (subject, predicate, object) facts in an
// ordered key/value backend using the Hexastore layout: every fact is
// written under all six permutations of its roles, so a query with any
// combination of bound roles is a single prefix range scan.
//
// # Key layout
//
// A key is a three-byte order tag followed by the three components in that
// order's role sequence. Each component is NFC-normalized and framed as
// uvarint(len) followed by its bytes:
//
//	"spo" | len(s) s | len(p) p | len(o) o
//
// Framing makes every string representable, including empty strings and
// strings containing any delimiter, and makes a framed prefix match only
// keys whose leading components are exactly equal.
//
// Every key maps to the same JSON record {"v":2,"s":...,"p":...,"o":...}
// whose components are base64 bytes, so any string round-trips exactly.
// The key "\x00format" holds the layout version.
package hexastore
