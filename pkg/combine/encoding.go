// File: pkg/combine/encoding.go
package combine

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// codec returns the x/text implementation behind e.
func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case EncodingUTF8:
		return unicode.UTF8, nil
	case EncodingUTF8BOM:
		return unicode.UTF8BOM, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	case EncodingASCII:
		return asciiEncoding{}, nil
	}
	return nil, &Error{Kind: ConfigurationError, Err: fmt.Errorf("unsupported encoding %v", e)}
}

// decode converts raw file bytes to UTF-8 text. Sequences that are not
// valid in the source encoding become U+FFFD instead of failing the read.
func decode(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodingWriter returns a writer that encodes UTF-8 text into enc before
// passing it to w. Close must be called to flush buffered state; it does
// not close w.
func encodingWriter(w io.Writer, enc encoding.Encoding) *transform.Writer {
	return transform.NewWriter(w, enc.NewEncoder())
}

// asciiEncoding is 7-bit US-ASCII. Decoding replaces every byte above 0x7F
// with U+FFFD; encoding fails on any non-ASCII rune.
type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: asciiDecoder{}}
}

func (asciiEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: asciiEncoder{}}
}

type asciiDecoder struct{ transform.NopResetter }

func (asciiDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = b
			nDst++
		} else {
			if nDst+utf8.RuneLen(utf8.RuneError) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], utf8.RuneError)
		}
		nSrc++
	}
	return nDst, nSrc, nil
}

type asciiEncoder struct{ transform.NopResetter }

func (asciiEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, _ := utf8.DecodeRune(src[nSrc:])
			return nDst, nSrc, fmt.Errorf("'ascii' codec can't encode character %q", r)
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
