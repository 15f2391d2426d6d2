package vkg

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestCubeImageOptions(t *testing.T) {
	o := CubeImageOptions(2048, vk.FormatR8g8b8a8Unorm)
	if err := o.validate(); err != nil {
		t.Fatal(err)
	}
	if o.layers() != 6 || !o.Cube {
		t.Errorf("cube options should have 6 cube layers, got %d cube=%v", o.layers(), o.Cube)
	}
	if o.Usage&vk.ImageUsageSampledBit == 0 || o.Usage&vk.ImageUsageTransferDstBit == 0 {
		t.Error("cube images must be sampled transfer destinations")
	}
}

func TestImageOptionsValidate(t *testing.T) {
	cases := []struct {
		name string
		o    ImageOptions
		ok   bool
	}{
		{"plain", ImageOptions{Extent: vk.Extent2D{Width: 4, Height: 2}}, true},
		{"empty", ImageOptions{}, false},
		{"cube not square", ImageOptions{Extent: vk.Extent2D{Width: 4, Height: 2}, Layers: 6, Cube: true}, false},
		{"cube wrong layers", ImageOptions{Extent: vk.Extent2D{Width: 4, Height: 4}, Layers: 4, Cube: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.o.validate()
			if (err == nil) != c.ok {
				t.Errorf("validate() = %v, want ok=%v", err, c.ok)
			}
		})
	}
}

func TestLayerCopyRegions(t *testing.T) {
	extent := vk.Extent2D{Width: 4, Height: 4}
	regions := layerCopyRegions(extent, 6, 64)
	if len(regions) != 6 {
		t.Fatalf("got %d regions, want 6", len(regions))
	}
	for n, r := range regions {
		if uint64(r.BufferOffset) != uint64(n)*64 {
			t.Errorf("layer %d offset %d", n, r.BufferOffset)
		}
		if r.ImageSubresource.BaseArrayLayer != uint32(n) || r.ImageSubresource.LayerCount != 1 {
			t.Errorf("layer %d subresource %+v", n, r.ImageSubresource)
		}
		if r.ImageExtent.Width != 4 || r.ImageExtent.Height != 4 || r.ImageExtent.Depth != 1 {
			t.Errorf("layer %d extent %+v", n, r.ImageExtent)
		}
	}
}

func TestTransitionFor(t *testing.T) {
	if _, err := transitionFor(vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		t.Error(err)
	}
	tr, err := transitionFor(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
	if err != nil {
		t.Fatal(err)
	}
	if tr.dstStage != vk.PipelineStageFragmentShaderBit {
		t.Error("shader read transition should wait for the fragment stage")
	}
	if _, err := transitionFor(vk.ImageLayoutGeneral, vk.ImageLayoutPresentSrc); err == nil {
		t.Error("expected unsupported transition to fail")
	}
}

func TestLayerBytes(t *testing.T) {
	img := &Image{VKFormat: vk.FormatR8g8b8a8Unorm, Extent: vk.Extent2D{Width: 8, Height: 8}, Layers: 6}
	lb, err := img.LayerBytes()
	if err != nil || lb != 256 {
		t.Errorf("LayerBytes() = %d, %v", lb, err)
	}
	pb, err := img.PixelBytes()
	if err != nil || pb != 6*256 {
		t.Errorf("PixelBytes() = %d, %v", pb, err)
	}

	bad := &Image{VKFormat: vk.FormatBc1RgbUnormBlock, Extent: vk.Extent2D{Width: 8, Height: 8}, Layers: 1}
	if _, err := bad.LayerBytes(); err == nil {
		t.Error("compressed formats are not uploadable")
	}
}
