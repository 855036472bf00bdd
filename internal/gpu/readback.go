package gpu

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// alignedBytesPerRow returns the padded row pitch for a BGRA8 image of
// the given width.
func alignedBytesPerRow(width uint32) uint32 {
	bytesPerRow := width * 4
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// unpackRows strips per-row padding from a readback of h rows with pitch
// stride and returns the tightly packed bytes. Returns src when there is
// no padding.
func unpackRows(src []byte, w, h, stride uint32) []byte {
	bytesPerRow := w * 4
	if stride == bytesPerRow {
		return src[:int(bytesPerRow)*int(h)]
	}
	tight := make([]byte, int(bytesPerRow)*int(h))
	for row := 0; row < int(h); row++ {
		srcOff := row * int(stride)
		dstOff := row * int(bytesPerRow)
		copy(tight[dstOff:dstOff+int(bytesPerRow)], src[srcOff:srcOff+int(bytesPerRow)])
	}
	return tight
}

// convertBGRAToRGBA copies n pixels from src (BGRA) into dst (RGBA).
func convertBGRAToRGBA(src, dst []byte, n int) {
	for i := 0; i < n; i++ {
		o := i * 4
		dst[o+0] = src[o+2]
		dst[o+1] = src[o+1]
		dst[o+2] = src[o+0]
		dst[o+3] = src[o+3]
	}
}
