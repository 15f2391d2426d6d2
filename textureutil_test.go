package vkg

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func faces(sizes ...int) []*image.RGBA {
	ret := make([]*image.RGBA, len(sizes))
	for i, s := range sizes {
		ret[i] = image.NewRGBA(image.Rect(0, 0, s, s))
	}
	return ret
}

func TestCubemapFaceSize(t *testing.T) {
	size, err := cubemapFaceSize(faces(4, 4, 4, 4, 4, 4))
	if err != nil || size != 4 {
		t.Fatalf("cubemapFaceSize() = %d, %v", size, err)
	}

	cases := []struct {
		name  string
		faces []*image.RGBA
		want  string
	}{
		{"too few", faces(4, 4, 4), "needs 6 faces"},
		{"mismatch", faces(4, 4, 4, 8, 4, 4), "face 3"},
		{"missing", append(faces(4, 4, 4, 4, 4), nil), "face 5 is missing"},
		{"not square", append(faces(4, 4, 4, 4, 4), image.NewRGBA(image.Rect(0, 0, 4, 2))), "must be square"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := cubemapFaceSize(c.faces)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("got %v, want error containing %q", err, c.want)
			}
		})
	}
}

func TestCopyRGBASubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	src.Set(2, 2, color.RGBA{R: 5, G: 6, B: 7, A: 8})
	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	dst := make([]byte, 2*2*4)
	if n := copyRGBA(dst, sub); n != len(dst) {
		t.Fatalf("copied %d bytes, want %d", n, len(dst))
	}
	if dst[0] != 1 || dst[3] != 4 {
		t.Errorf("first pixel = %v", dst[:4])
	}
	if dst[12] != 5 || dst[15] != 8 {
		t.Errorf("last pixel = %v", dst[12:])
	}
}
