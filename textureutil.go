package vkg

import (
	"fmt"
	"image"

	vk "github.com/vulkan-go/vulkan"
)

// CubemapFaces is the number of layers in a cubemap, in the order +X, -X,
// +Y, -Y, +Z, -Z.
const CubemapFaces = 6

// cubemapFaceSize checks that faces describe a cubemap and returns the edge
// length of a face.
func cubemapFaceSize(faces []*image.RGBA) (int, error) {
	if len(faces) != CubemapFaces {
		return 0, fmt.Errorf("a cubemap needs %d faces, got %d", CubemapFaces, len(faces))
	}
	var size int
	for n, f := range faces {
		if f == nil {
			return 0, fmt.Errorf("cubemap face %d is missing", n)
		}
		b := f.Bounds()
		if b.Dx() == 0 || b.Dx() != b.Dy() {
			return 0, fmt.Errorf("cubemap face %d is %dx%d, faces must be square", n, b.Dx(), b.Dy())
		}
		if n == 0 {
			size = b.Dx()
		} else if b.Dx() != size {
			return 0, fmt.Errorf("cubemap face %d is %dx%d, face 0 is %dx%d", n, b.Dx(), b.Dy(), size, size)
		}
	}
	return size, nil
}

// copyRGBA copies the pixels of img into dst as tightly packed rows and
// returns the number of bytes written.
func copyRGBA(dst []byte, img *image.RGBA) int {
	b := img.Bounds()
	row := b.Dx() * 4
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		n += copy(dst[n:], img.Pix[start:start+row])
	}
	return n
}

// StageCubemap allocates a cube image in the pool and writes the faces to
// its staging resource. The pixels reach the image once the commands from
// CmdUploadImage have executed, after which FreeStagingResource may be
// called.
func (p *ImageResourcePool) StageCubemap(faces []*image.RGBA) (*ImageResource, error) {
	size, err := cubemapFaceSize(faces)
	if err != nil {
		return nil, err
	}

	img, err := p.AllocateImage(CubeImageOptions(uint32(size), vk.FormatR8g8b8a8Unorm))
	if err != nil {
		return nil, err
	}

	if err := img.AllocateStagingResource(); err != nil {
		img.Free()
		return nil, err
	}
	staging := img.StagingResource
	if err := staging.ResourcePool.Map(); err != nil {
		img.Free()
		return nil, err
	}
	dst, err := staging.Bytes()
	if err != nil {
		img.Free()
		return nil, err
	}

	layerBytes, err := img.LayerBytes()
	if err != nil {
		img.Free()
		return nil, err
	}
	for n, f := range faces {
		copyRGBA(dst[uint64(n)*layerBytes:], f)
	}

	return img, nil
}

// CmdUploadImage records the transfer of a staged image and leaves it ready
// to be sampled by fragment shaders.
func (cb *CommandBuffer) CmdUploadImage(img *ImageResource) error {
	if err := cb.TransitionImageLayout(&img.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	if err := cb.StageImageResource(img); err != nil {
		return err
	}
	return cb.TransitionImageLayout(&img.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
}
