package cpu

import (
	"encoding/binary"
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// IMAGE_MAGIC leads every binary image.
var IMAGE_MAGIC = "MAR1"

// Image is the on-disk form of an instruction stream.
type Image struct {
	Magic  string   `struc:"[4]byte"`
	Origin uint16   `struc:"uint16"`
	Size   int      `struc:"uint16,sizeof=Words"`
	Words  []uint16 `struc:"[]uint16"`
}

// Marshal writes the program as a big-endian binary image.
func (prog *Program) Marshal(out io.Writer) (err error) {
	img := &Image{
		Magic:  IMAGE_MAGIC,
		Origin: prog.Origin,
		Words:  prog.Binary(),
	}

	if err = struc.PackWithOrder(out, img, binary.BigEndian); err != nil {
		err = errors.Wrap(err, "failed to pack image")
	}
	return
}

// Unmarshal loads a binary image written by Marshal.
func Unmarshal(in io.Reader) (prog *Program, err error) {
	img := &Image{}
	if err = struc.UnpackWithOrder(in, img, binary.BigEndian); err != nil {
		err = errors.Wrap(err, "failed to unpack image")
		return
	}

	if img.Magic != IMAGE_MAGIC {
		err = ErrImageMagic
		return
	}

	if img.Origin > ADDRESS_MASK || int(img.Origin)+len(img.Words) > MEMORY_SIZE {
		err = ErrProgramRange
		return
	}

	prog = ProgramFromWords(img.Origin, img.Words)
	return
}
