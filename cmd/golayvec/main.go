package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/pd0mz/go-golay/bit"
	"github.com/pd0mz/go-golay/channel"
	"github.com/pd0mz/go-golay/fec"
)

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func main() {
	var (
		message  = flag.String("m", "", "12 bit message, random if empty")
		received = flag.String("r", "", "use this 23 bit word as the received word instead of transmitting")
		p        = flag.Float64("p", 0.1, "channel error probability")
		seed     = flag.Int64("seed", 0, "channel seed, 0 uses the clock")
	)
	flag.Parse()

	var m bit.Bits
	if *message == "" {
		var raw = make([]byte, 2)
		rand.Read(raw)
		m = bit.NewBits(raw)[:fec.Golay_23_12_DataSize]
	} else {
		var err error
		if m, err = bit.Parse(*message); err != nil {
			fatalf("message: %v", err)
		}
	}

	code := fec.NewGolay_23_12()
	encoded, err := code.Encode(m)
	if err != nil {
		fatalf("encode: %v", err)
	}

	var transmitted bit.Bits
	if *received != "" {
		if transmitted, err = bit.Parse(*received); err != nil {
			fatalf("received: %v", err)
		}
		if len(transmitted) != fec.Golay_23_12_CodewordSize {
			fatalf("received: expected %d bits, got %d", fec.Golay_23_12_CodewordSize, len(transmitted))
		}
	} else {
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		c, err := channel.New(*p, mrand.New(mrand.NewSource(*seed)))
		if err != nil {
			fatalf("channel: %v", err)
		}
		transmitted = c.Transmit(encoded)
	}

	diff, err := transmitted.Add(encoded)
	if err != nil {
		fatalf("diff: %v", err)
	}
	var marks = make([]byte, len(diff))
	for i, b := range diff {
		if b == 1 {
			marks[i] = '^'
		} else {
			marks[i] = ' '
		}
	}

	fmt.Printf("message....: %s\n", m)
	fmt.Printf("encoded....: %s\n", encoded)
	fmt.Printf("received...: %s\n", transmitted)
	fmt.Printf("             %s (%d errors)\n", marks, diff.Weight())

	raw, err := code.DecodeNoCorrection(transmitted)
	if err != nil {
		fatalf("decode: %v", err)
	}
	fmt.Printf("uncorrected: %s\n", raw)

	decoded, err := code.Decode(transmitted)
	if err != nil {
		fatalf("decode: %v", err)
	}
	fmt.Printf("decoded....: %s\n", decoded)
	if decoded.Equal(m) {
		fmt.Println("result.....: ok")
	} else {
		fmt.Println("result.....: wrong codeword, more than 3 errors")
	}
}
