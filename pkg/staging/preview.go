package staging

import (
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/bbrks/go-blurhash"
)

// previewSize bounds the thumbnail used for BlurHash computation. The hash
// is a low-resolution placeholder so a small thumbnail gives the same result
// at a fraction of the cost.
const previewSize = 64

// Preview is the derived placeholder for one staged image: source bounds
// plus a BlurHash string a terminal or web surface can render before the
// hosted URL exists.
type Preview struct {
	Width    int
	Height   int
	BlurHash string
}

// computePreview decodes the staged file and derives its preview. A file
// that does not decode as an image yields a zero Preview; staging itself
// still succeeds and the upload decides whether the host accepts it.
func computePreview(r io.Reader) Preview {
	img, _, err := image.Decode(r)
	if err != nil {
		return Preview{}
	}
	bounds := img.Bounds()
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		hash = ""
	}
	return Preview{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		BlurHash: hash,
	}
}

func thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW <= previewSize && srcH <= previewSize {
		return img
	}

	var dstW, dstH int
	if srcW > srcH {
		dstW = previewSize
		dstH = max(1, (srcH*previewSize)/srcW)
	} else {
		dstH = previewSize
		dstW = max(1, (srcW*previewSize)/srcH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xRatio := float64(srcW) / float64(dstW)
	yRatio := float64(srcH) / float64(dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			srcX := bounds.Min.X + int(float64(x)*xRatio)
			srcY := bounds.Min.Y + int(float64(y)*yRatio)
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}
	return dst
}
