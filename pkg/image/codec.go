package image

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"stackvm/pkg/isa"
)

const (
	formatMagic   = "SVMI"
	formatVersion = 1
)

var ErrBadFormat = errors.New("not a stackvm image")

// encodedImage is the on-disk form. Jump targets are not stored; they are
// resolved again when the image is decoded.
type encodedImage struct {
	Magic        string               `cbor:"magic"`
	Version      int                  `cbor:"version"`
	Instructions []encodedInstruction `cbor:"instructions"`
}

type encodedInstruction struct {
	Op    string `cbor:"op"`
	Value int64  `cbor:"value,omitempty"`
	Name  string `cbor:"name,omitempty"`
	Label string `cbor:"label,omitempty"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Marshal serializes an image to canonical CBOR bytes
func Marshal(img *Image) ([]byte, error) {
	enc := encodedImage{
		Magic:        formatMagic,
		Version:      formatVersion,
		Instructions: make([]encodedInstruction, len(img.instrs)),
	}

	for i, in := range img.instrs {
		enc.Instructions[i] = encodedInstruction{
			Op:    string(in.Op),
			Value: in.Value,
			Name:  in.Name,
			Label: in.Label,
		}
	}

	return encMode.Marshal(enc)
}

// Unmarshal deserializes and re-validates an image
func Unmarshal(data []byte) (*Image, error) {
	var enc encodedImage
	if err := cbor.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("image: unmarshal: %w", err)
	}

	if enc.Magic != formatMagic {
		return nil, ErrBadFormat
	}
	if enc.Version != formatVersion {
		return nil, fmt.Errorf("image: unsupported version %d", enc.Version)
	}

	instrs := make([]isa.Instruction, len(enc.Instructions))
	for i, e := range enc.Instructions {
		instrs[i] = isa.Instruction{
			Op:    isa.Mnemonic(e.Op),
			Value: e.Value,
			Name:  e.Name,
			Label: e.Label,
		}
	}

	return New(instrs)
}
