package pixel

import "testing"

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Off
			if y > 0 {
				c = On
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				t.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				t.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				t.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestMonoModelConvert(t *testing.T) {
	for _, c := range []Mono{Off, On} {
		if v := MonoModel.Convert(c); v != c {
			t.Errorf("expected %#+v to convert to itself, got %#+v", c, v)
		}
	}
}
