package serialize

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kegliz/ftcompile/internal/memopt"
)

// BinaryWriter emits the scheduler's wire format: a u32 little-endian
// qubit-count header followed by a stream of length-prefixed records, one
// per Instruction.
type BinaryWriter struct {
	w io.Writer
}

func NewBinaryWriter(w io.Writer, qubits int) (*BinaryWriter, error) {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(qubits))
	if _, err := w.Write(hdr[:]); err != nil {
		return nil, fmt.Errorf("serialize: writing qubit count header: %w", err)
	}
	return &BinaryWriter{w: w}, nil
}

// WriteInstruction appends one length-prefixed record.
func (bw *BinaryWriter) WriteInstruction(in memopt.Instruction) error {
	body := encodeRecord(in)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := bw.w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("serialize: writing record length: %w", err)
	}
	if _, err := bw.w.Write(body); err != nil {
		return fmt.Errorf("serialize: writing record body: %w", err)
	}
	return nil
}

// record layout: 1 byte opcode, 1 byte qubit count, qubits as u32 LE each,
// 2 bytes gate-word length, then that many length-prefixed word strings.
func encodeRecord(in memopt.Instruction) []byte {
	buf := make([]byte, 0, 16+4*len(in.Qubits))
	buf = append(buf, byte(in.Op))
	buf = append(buf, byte(len(in.Qubits)))
	var tmp [4]byte
	for _, q := range in.Qubits {
		binary.LittleEndian.PutUint32(tmp[:], uint32(q))
		buf = append(buf, tmp[:]...)
	}
	var wlen [2]byte
	binary.LittleEndian.PutUint16(wlen[:], uint16(len(in.Word)))
	buf = append(buf, wlen[:]...)
	for _, g := range in.Word {
		var glen [2]byte
		binary.LittleEndian.PutUint16(glen[:], uint16(len(g)))
		buf = append(buf, glen[:]...)
		buf = append(buf, g...)
	}
	return buf
}

// BinaryReader decodes the wire format produced by BinaryWriter. Each
// ReadInstruction call stamps a monotonically increasing sequence number,
// matching the scheduler's read-time stamping rule. EOF is detected
// non-destructively: a short read of zero bytes at a record boundary
// reports io.EOF without consuming any input, so callers can safely retry
// after appending more data to a streaming source.
type BinaryReader struct {
	r       *bufio.Reader
	qubits  int
	nextSeq uint64
}

// NewBinaryReader consumes the 4-byte qubit-count header and returns a
// reader positioned at the first record.
func NewBinaryReader(r io.Reader) (*BinaryReader, error) {
	br := bufio.NewReader(r)
	var hdr [4]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("serialize: reading qubit count header: %w", err)
	}
	return &BinaryReader{r: br, qubits: int(binary.LittleEndian.Uint32(hdr[:]))}, nil
}

func (br *BinaryReader) Qubits() int { return br.qubits }

// ReadInstruction decodes the next record, or returns io.EOF if the stream
// is exhausted exactly at a record boundary.
func (br *BinaryReader) ReadInstruction() (memopt.Instruction, error) {
	peek, err := br.r.Peek(1)
	if err != nil && len(peek) == 0 {
		return memopt.Instruction{}, io.EOF
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(br.r, lenBuf[:]); err != nil {
		return memopt.Instruction{}, fmt.Errorf("serialize: reading record length: %w", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(br.r, body); err != nil {
		return memopt.Instruction{}, fmt.Errorf("serialize: reading record body: %w", err)
	}
	in, err := decodeRecord(body)
	if err != nil {
		return memopt.Instruction{}, err
	}
	in.Seq = br.nextSeq
	br.nextSeq++
	return in, nil
}

func decodeRecord(body []byte) (memopt.Instruction, error) {
	if len(body) < 2 {
		return memopt.Instruction{}, fmt.Errorf("serialize: truncated record header")
	}
	in := memopt.Instruction{Op: memopt.Opcode(body[0])}
	nq := int(body[1])
	pos := 2
	for i := 0; i < nq; i++ {
		if pos+4 > len(body) {
			return memopt.Instruction{}, fmt.Errorf("serialize: truncated qubit list")
		}
		in.Qubits = append(in.Qubits, int(binary.LittleEndian.Uint32(body[pos:pos+4])))
		pos += 4
	}
	if pos+2 > len(body) {
		return memopt.Instruction{}, fmt.Errorf("serialize: truncated gate-word length")
	}
	wlen := int(binary.LittleEndian.Uint16(body[pos : pos+2]))
	pos += 2
	for i := 0; i < wlen; i++ {
		if pos+2 > len(body) {
			return memopt.Instruction{}, fmt.Errorf("serialize: truncated gate-word entry")
		}
		glen := int(binary.LittleEndian.Uint16(body[pos : pos+2]))
		pos += 2
		if pos+glen > len(body) {
			return memopt.Instruction{}, fmt.Errorf("serialize: truncated gate-word string")
		}
		in.Word = append(in.Word, string(body[pos:pos+glen]))
		pos += glen
	}
	return in, nil
}
