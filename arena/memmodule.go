package arena

import "bytes"

// WebAssembly binary format constants for the backing module.
const (
	sectionMemory = 0x05
	sectionExport = 0x07
	exportKindMem = 0x02
	limitsMinMax  = 0x01
)

// memoryModule assembles the smallest valid wasm module that exports one
// linear memory: magic, version, a memory section with min/max limits, and
// an export of that memory under the name "memory".
func memoryModule(minPages, maxPages uint32) []byte {
	var mem bytes.Buffer
	mem.WriteByte(0x01) // one memory
	mem.WriteByte(limitsMinMax)
	writeLEB128u(&mem, minPages)
	writeLEB128u(&mem, maxPages)

	var exp bytes.Buffer
	exp.WriteByte(0x01) // one export
	writeLEB128u(&exp, uint32(len("memory")))
	exp.WriteString("memory")
	exp.WriteByte(exportKindMem)
	writeLEB128u(&exp, 0) // memory index

	var out bytes.Buffer
	out.Write([]byte{0x00, 0x61, 0x73, 0x6d}) // magic
	out.Write([]byte{0x01, 0x00, 0x00, 0x00}) // version 1
	writeSection(&out, sectionMemory, mem.Bytes())
	writeSection(&out, sectionExport, exp.Bytes())
	return out.Bytes()
}

func writeSection(w *bytes.Buffer, id byte, body []byte) {
	w.WriteByte(id)
	writeLEB128u(w, uint32(len(body)))
	w.Write(body)
}

// writeLEB128u writes an unsigned LEB128 value
func writeLEB128u(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			return
		}
	}
}
