package hal

// RGB565 packs 8-bit channels into rrrrrggggggbbbbb, dropping low bits.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}

// RGB888 widens an RGB565 pixel by replicating each channel's high bits into
// the low bits, so 0x1F and 0x3F map to 0xFF.
func RGB888(p uint16) (r, g, b uint8) {
	r5, g6, b5 := uint8(p>>11)&0x1F, uint8(p>>5)&0x3F, uint8(p)&0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}
