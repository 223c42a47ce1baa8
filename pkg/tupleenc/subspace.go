package tupleenc

// Subspace is a byte prefix carving out a namespace inside the flat KV
// keyspace. Every key written under a subspace begins with its prefix;
// Range() gives the half-open [begin, end) bounds that contain exactly
// those keys.
type Subspace struct {
	prefix []byte
}

// NewSubspace creates a root subspace under the given raw prefix.
func NewSubspace(prefix []byte) Subspace {
	return Subspace{prefix: append([]byte{}, prefix...)}
}

// Sub appends a child tuple element to the prefix, returning a nested
// subspace. Used to assign each index ordering its own small integer
// child (see indexstrategy.Ordering).
func (s Subspace) Sub(child TupleElement) Subspace {
	return Subspace{prefix: append(s.Pack(Tuple{child}))}
}

// Bytes returns the raw prefix.
func (s Subspace) Bytes() []byte {
	return append([]byte{}, s.prefix...)
}

// Pack packs a tuple and prepends the subspace prefix.
func (s Subspace) Pack(t Tuple) []byte {
	out := make([]byte, 0, len(s.prefix)+16*len(t))
	out = append(out, s.prefix...)
	return append(out, Pack(t)...)
}

// Unpack strips the subspace prefix and decodes the remaining bytes as a
// tuple. Fails with ErrKeyOutsideSubspace if the prefix does not match.
func (s Subspace) Unpack(key []byte) (Tuple, error) {
	if len(key) < len(s.prefix) {
		return nil, ErrKeyOutsideSubspace
	}
	for i, b := range s.prefix {
		if key[i] != b {
			return nil, ErrKeyOutsideSubspace
		}
	}
	return Unpack(key[len(s.prefix):])
}

// Range returns the [begin, end) key range containing exactly the keys
// written under this subspace.
func (s Subspace) Range() (begin, end []byte) {
	begin = append([]byte{}, s.prefix...)
	end = append([]byte{}, s.prefix...)
	end = append(end, 0xff)
	return begin, end
}

// Contains reports whether key carries this subspace's prefix.
func (s Subspace) Contains(key []byte) bool {
	if len(key) < len(s.prefix) {
		return false
	}
	for i, b := range s.prefix {
		if key[i] != b {
			return false
		}
	}
	return true
}
