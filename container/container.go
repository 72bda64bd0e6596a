// Package container knows how many leading bytes of an image container must
// bypass the channel so the result stays readable.
package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownContainer = errors.New("container: unknown container kind")
	ErrShortData        = errors.New("container: data shorter than header")
)

type Kind uint8

const (
	Raw Kind = iota
	PNG
	WebP
	BMP
)

var kindName = map[Kind]string{
	Raw:  "raw",
	PNG:  "png",
	WebP: "webp",
	BMP:  "bmp",
}

var headerLen = map[Kind]int{
	Raw:  0,
	PNG:  2,
	WebP: 3,
	BMP:  138,
}

// Kinds lists all supported container kinds.
func Kinds() []Kind {
	return []Kind{Raw, PNG, WebP, BMP}
}

// ParseKind resolves a container name such as "bmp" or "image/png".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "image/")
	name = strings.TrimPrefix(name, ".")
	if name == "" {
		return Raw, nil
	}
	for k, n := range kindName {
		if n == name {
			return k, nil
		}
	}
	return Raw, fmt.Errorf("%w: %q", ErrUnknownContainer, name)
}

func (k Kind) String() string {
	if n, ok := kindName[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// HeaderLen is the number of leading bytes kept out of the channel.
func (k Kind) HeaderLen() int {
	return headerLen[k]
}

// MarshalText and UnmarshalText let a Kind appear in config files.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindName[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContainer, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Split separates data into the header and the body that is run through the
// channel. The returned slices alias data.
func (k Kind) Split(data []byte) (header, body []byte, err error) {
	if _, ok := kindName[k]; !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownContainer, uint8(k))
	}
	n := k.HeaderLen()
	if len(data) < n {
		return nil, nil, fmt.Errorf("%w: %s needs %d header bytes, got %d", ErrShortData, k, n, len(data))
	}
	return data[:n], data[n:], nil
}

// Join glues header and body back together into a new slice.
func Join(header, body []byte) []byte {
	var o = make([]byte, 0, len(header)+len(body))
	o = append(o, header...)
	return append(o, body...)
}
