package pwhash

// Trace records the intermediate values of a single digest computation.
type Trace struct {
	// Normalized is the lowercased password.
	Normalized []byte
	// Schedule holds the 80 words consumed by the compression rounds.
	Schedule [rounds]uint32
	// States holds the accumulators a..e before round 0 and after each round.
	States [rounds + 1][5]uint32
	// Digest is the final output.
	Digest [Size]byte
}

// Rounds is the number of compression rounds.
const Rounds = rounds

// SeedLen returns the number of normalized bytes that influence the digest.
func (t *Trace) SeedLen() int {
	return min(len(t.Normalized), SeedSize)
}

// IgnoredLen returns the number of normalized bytes overwritten by the
// schedule expansion.
func (t *Trace) IgnoredLen() int {
	return len(t.Normalized) - t.SeedLen()
}

// TraceString computes the digest of password like HashString and records
// every intermediate value.
func TraceString(password string) (*Trace, error) {
	p, err := normalizeString(password)
	if err != nil {
		return nil, err
	}
	return trace(p), nil
}

// TraceBytes is like TraceString but validates password as UTF-8 first.
func TraceBytes(password []byte) (*Trace, error) {
	p, err := normalizeBytes(password)
	if err != nil {
		return nil, err
	}
	return trace(p), nil
}

func trace(p []byte) *Trace {
	var w schedule
	w.load(p)
	w.expand()

	var states [rounds + 1]state
	h := initState()
	block(&h, &w, &states)

	t := &Trace{
		Normalized: p,
		Digest:     h.digest(),
	}
	copy(t.Schedule[:], w[:rounds])
	for i, s := range states {
		t.States[i] = s
	}
	return t
}
