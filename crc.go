package brcode

// CRC-16/CCITT-FALSE parameters.
const (
	crcPoly = 0x1021
	crcInit = 0xFFFF
)

// CRC16 computes CRC-16/CCITT-FALSE over data: initial value 0xFFFF,
// polynomial 0x1021, no reflection and no final XOR.
func CRC16(data []byte) uint16 {
	crc := uint16(crcInit)

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}

// Checksum returns the CRC of data as four uppercase hex digits.
func Checksum(data []byte) string {
	return encodeHexUpper16(CRC16(data))
}

// VerifyChecksum reports whether the last four characters of payload are
// the checksum of everything before them.
func VerifyChecksum(payload string) bool {
	if len(payload) < len(crcPlaceholder)+CRCLength {
		return false
	}
	body := payload[:len(payload)-CRCLength]
	return Checksum([]byte(body)) == payload[len(payload)-CRCLength:]
}
