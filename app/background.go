package app

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"

	"github.com/pointdrift/pointdrift/core"
)

// loadBackgroundTexture decodes the image at path, scales it to the
// fixed dimensions baked into the background shader, and uploads it as a
// sampleable texture.
func loadBackgroundTexture(device *wgpu.Device, queue *wgpu.Queue, path string) (*wgpu.TextureView, error) {
	if path == "" {
		return nil, fmt.Errorf("no background image configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	rgba := scaleToFill(src, core.BackgroundImageWidth, core.BackgroundImageHeight)

	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Background Texture",
		Size: wgpu.Extent3D{
			Width:              core.BackgroundImageWidth,
			Height:             core.BackgroundImageHeight,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	queue.WriteTexture(
		texture.AsImageCopy(),
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * core.BackgroundImageWidth,
			RowsPerImage: core.BackgroundImageHeight,
		},
		&wgpu.Extent3D{
			Width:              core.BackgroundImageWidth,
			Height:             core.BackgroundImageHeight,
			DepthOrArrayLayers: 1,
		},
	)

	return texture.CreateView(nil)
}

// scaleToFill scales src to cover width x height, cropping the source
// centered when the aspect ratios differ.
func scaleToFill(src image.Image, width, height int) *image.RGBA {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()

	// Largest centered source rectangle with the target aspect ratio.
	cropW, cropH := srcW, srcH
	if srcW*height > srcH*width {
		cropW = srcH * width / height
	} else {
		cropH = srcW * height / width
	}
	x0 := sb.Min.X + (srcW-cropW)/2
	y0 := sb.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}
