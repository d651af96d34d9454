package formats

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	// Register the decoders image.Decode can dispatch to.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageData is the intermediate result of decoding an image asset:
// tightly packed RGBA pixels, top row first unless flipped.
type ImageData struct {
	Name         string
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

// ImageFormat decodes png, jpeg, bmp and tiff images.
type ImageFormat struct {
	// FlipY stores rows bottom-up, for backends with an inverted v axis.
	FlipY bool
}

func (f ImageFormat) Extension() string {
	return ".png"
}

func (f ImageFormat) Import(name string, data []byte) (*ImageData, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", name, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	pixels := make([]uint8, 4*width*height)
	for y := 0; y < height; y++ {
		row := y
		if f.FlipY {
			row = height - 1 - y
		}
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*width]
		copy(pixels[row*4*width:], src)
	}

	return &ImageData{
		Name:         name,
		Width:        uint32(width),
		Height:       uint32(height),
		ChannelCount: 4,
		Pixels:       pixels,
	}, nil
}
