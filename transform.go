package golay

import (
	"golang.org/x/text/transform"
)

// groupSize is the number of bytes that fill exactly two blocks.
const groupSize = 2 * BlockSize / 8

type channelCoder struct {
	transform.NopResetter
	p    *Pipeline
	mode Mode
}

// NewTransformer returns a transformer that sends a byte stream through the
// pipeline. Input is consumed in groups of three bytes (two blocks) so no
// padding is needed until the end of the stream.
func NewTransformer(p *Pipeline, mode Mode) transform.Transformer {
	return channelCoder{p: p, mode: mode}
}

func (c channelCoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if !atEOF {
		n -= n % groupSize
	}
	if len(dst) < n {
		// Only whole groups may be cut off, padding mid-stream would corrupt
		// the output.
		n = len(dst) - len(dst)%groupSize
		if n == 0 {
			return 0, 0, transform.ErrShortDst
		}
		err = transform.ErrShortDst
	} else if n < len(src) {
		err = transform.ErrShortSrc
	}
	if n == 0 {
		return 0, 0, err
	}

	res, rerr := c.p.RunBytes(src[:n], c.mode)
	if rerr != nil {
		return 0, 0, rerr
	}
	nDst = copy(dst, res.Bytes)
	nSrc = n
	return nDst, nSrc, err
}
