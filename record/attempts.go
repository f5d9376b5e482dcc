package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnsim/msat"
)

// encodeAttempts flattens a payment's attempts into a single byte blob
// that is carried as one dynamic TLV field (§6 notes the per-attempt path
// detail is "nice to have" but need not be its own top-level record).
func encodeAttempts(attempts []AttemptRecord) []byte {
	var buf bytes.Buffer

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(attempts)))
	buf.Write(u32[:])

	for _, a := range attempts {
		binary.BigEndian.PutUint32(u32[:], uint32(len(a.ChannelIDs)))
		buf.Write(u32[:])

		var u64 [8]byte
		for _, id := range a.ChannelIDs {
			binary.BigEndian.PutUint64(u64[:], id)
			buf.Write(u64[:])
		}
		for _, amt := range a.Amounts {
			binary.BigEndian.PutUint64(u64[:], uint64(amt))
			buf.Write(u64[:])
		}

		if a.Success {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}

func decodeAttempts(blob []byte) ([]AttemptRecord, error) {
	r := bytes.NewReader(blob)

	var u32 [4]byte
	if _, err := io.ReadFull(r, u32[:]); err != nil {
		return nil, fmt.Errorf("reading attempt count: %w", err)
	}
	count := binary.BigEndian.Uint32(u32[:])
	if count == 0 {
		return nil, nil
	}

	attempts := make([]AttemptRecord, count)
	for i := range attempts {
		if _, err := io.ReadFull(r, u32[:]); err != nil {
			return nil, fmt.Errorf("reading hop count: %w", err)
		}
		hops := binary.BigEndian.Uint32(u32[:])

		channelIDs := make([]uint64, hops)
		amounts := make([]msat.MilliSatoshi, hops)

		var u64 [8]byte
		for j := range channelIDs {
			if _, err := io.ReadFull(r, u64[:]); err != nil {
				return nil, fmt.Errorf("reading channel id: %w", err)
			}
			channelIDs[j] = binary.BigEndian.Uint64(u64[:])
		}
		for j := range amounts {
			if _, err := io.ReadFull(r, u64[:]); err != nil {
				return nil, fmt.Errorf("reading amount: %w", err)
			}
			amounts[j] = msat.MilliSatoshi(binary.BigEndian.Uint64(u64[:]))
		}

		success, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("reading success flag: %w", err)
		}

		attempts[i] = AttemptRecord{
			ChannelIDs: channelIDs,
			Amounts:    amounts,
			Success:    success != 0,
		}
	}

	return attempts, nil
}
