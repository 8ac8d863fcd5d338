package polar

import "github.com/sigurn/crc16"

// Same polynomial as the M17 radio protocol.
var frameCRCParams = crc16.Params{
	Poly: 0x5935,
	Init: 0xffff,
	Name: "POLAR-FRAME",
}

var frameCRCTable = crc16.MakeTable(frameCRCParams)

// CRC calculates the frame checksum.
func CRC(in []byte) uint16 {
	return crc16.Checksum(in, frameCRCTable)
}
