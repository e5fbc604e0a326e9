// Package images keeps image helpers: decoding of whatever web page may
// reference, SVG rasterization and color sampling.
package images

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SampleSize is the side of the square raster colors are counted on.
const SampleSize = 100

var (
	ErrEmptyImage       = errors.New("empty image data")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// Decode decodes raster or SVG image data. Type name is returned for
// diagnostics.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}

	if IsSVG(data) {
		img, err := RasterizeSVGToImage(data, SampleSize*2, SampleSize*2)
		if err != nil {
			return nil, "svg", fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return img, "svg", nil
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return nil, kind.Extension, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind.MIME.Value)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("unable to decode %s image: %w", kind.Extension, err)
	}
	return img, format, nil
}

// DominantColors returns up to n most frequent colors of the image as
// lowercase 6-digit hex strings. Image is first reduced to SampleSize x
// SampleSize raster; colors with equal counts keep order of first appearance
// in raster order. Alpha is dropped.
func DominantColors(data []byte, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	// NearestNeighbor keeps only colors actually present in the source image.
	small := imaging.Resize(img, SampleSize, SampleSize, imaging.NearestNeighbor)
	return topColors(small, n), nil
}

type colorCount struct {
	rgb   [3]uint8
	count int
}

func topColors(img image.Image, n int) []string {
	var (
		counts []colorCount
		index  = make(map[[3]uint8]int)
		b      = img.Bounds()
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			key := [3]uint8{c.R, c.G, c.B}
			if i, ok := index[key]; ok {
				counts[i].count++
				continue
			}
			index[key] = len(counts)
			counts = append(counts, colorCount{rgb: key, count: 1})
		}
	}

	// ties keep first appearance
	slices.SortStableFunc(counts, func(a, b colorCount) int {
		return cmp.Compare(b.count, a.count)
	})

	res := make([]string, 0, min(n, len(counts)))
	for _, c := range counts[:min(n, len(counts))] {
		res = append(res, fmt.Sprintf("#%02x%02x%02x", c.rgb[0], c.rgb[1], c.rgb[2]))
	}
	return res
}
