package roster

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteReportMsgpack writes r in MessagePack format as an array stream.
func WriteReportMsgpack(w io.Writer, r MatchReport) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(r)); err != nil {
		return err
	}
	for i := range r {
		if err := enc.Encode(&r[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadReportMsgpack reads a report written by WriteReportMsgpack.
func ReadReportMsgpack(r io.Reader) (MatchReport, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return MatchReport{}, nil
	}
	out := make(MatchReport, 0, n)
	for i := 0; i < n; i++ {
		var c MatchCandidate
		if err := dec.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
