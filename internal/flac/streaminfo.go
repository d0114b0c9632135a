package flac

import (
	"fmt"

	"github.com/112RG/metasonic/internal/binary"
	"github.com/112RG/metasonic/internal/registry"
	"github.com/112RG/metasonic/internal/types"
)

// StreamInfoSize is the fixed payload length of a STREAMINFO block.
const StreamInfoSize = 34

// DecodeStreamInfo decodes a STREAMINFO payload.
//
// Layout (bits): min block size 16, max block size 16, min frame size 24,
// max frame size 24, sample rate 20, channels-1 3, bits per sample-1 5,
// total samples 36, MD5 128. The sample rate through total samples are
// packed without padding across bytes 10-17.
func DecodeStreamInfo(payload []byte) (*types.StreamInfo, error) {
	if len(payload) != StreamInfoSize {
		return nil, &types.MalformedBlockError{
			Type:   types.BlockTypeStreamInfo,
			Reason: fmt.Sprintf("invalid size: %d (expected %d)", len(payload), StreamInfoSize),
		}
	}

	fr := binary.NewFieldReader(payload)
	si := &types.StreamInfo{
		MinBlockSize: uint16(fr.Read(16, "min block size")),
		MaxBlockSize: uint16(fr.Read(16, "max block size")),
		MinFrameSize: uint32(fr.Read(24, "min frame size")),
		MaxFrameSize: uint32(fr.Read(24, "max frame size")),
		SampleRate:   uint32(fr.Read(20, "sample rate")),
		Channels:     uint8(fr.Read(3, "channel count")) + 1,
		BitDepth:     uint8(fr.Read(5, "bits per sample")) + 1,
		TotalSamples: fr.Read(36, "total samples"),
	}
	copy(si.MD5[:], fr.Bytes(16, "MD5 signature"))

	if err := fr.Err(); err != nil {
		return nil, err
	}
	return si, nil
}

func decodeStreamInfo(payload []byte, _ registry.WarnFunc) (types.Block, error) {
	si, err := DecodeStreamInfo(payload)
	if err != nil {
		return nil, err
	}
	return si, nil
}
