package container

// Core format constants that never change

const (
	MagicSize  = 6
	LengthSize = 4
	HeaderSize = MagicSize + LengthSize // magic (6) + u32 length (4)

	// Suffix of the data file written by embed
	FileSuffix = ".binvid"
)

var (
	MagicBinary = [MagicSize]byte{'B', 'I', 'N', 'V', 'I', 'D'} // bits packed 8 per byte
	MagicColor  = [MagicSize]byte{'C', 'O', 'L', 'V', 'I', 'D'} // raw bytes
)
