// Package metasonic decodes the metadata blocks at the head of a FLAC
// stream.
//
// It reads the "fLaC" marker and then every metadata block up to the one
// flagged as last, decoding STREAMINFO and VORBIS_COMMENT and keeping every
// other block as raw bytes. Audio frames are never read.
//
// # Quick Start
//
// Reading metadata from a file:
//
//	file, err := metasonic.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	si := file.StreamInfo()
//	fmt.Printf("%d Hz, %d ch, %d bit, %s\n",
//		si.SampleRate, si.Channels, si.BitDepth, si.Duration())
//
//	if vc := file.VorbisComment(); vc != nil {
//		fmt.Println(vc.Comments.First("ARTIST"), "-", vc.Comments.First("TITLE"))
//	}
//
// Reading from any stream:
//
//	md, err := metasonic.Parse(ctx, bufio.NewReader(resp.Body))
//
// # Blocks
//
// Metadata.Blocks holds one Block per metadata block, in stream order. The
// concrete type is *StreamInfo, *VorbisComment or *Raw. Reserved block
// types and types without a decoder come back as *Raw, so a stream written
// by a newer encoder can still be read. WithDecoder plugs in decoders for
// more block types.
//
// Comments are an insertion-ordered multimap with case-insensitive keys:
//
//	for key, values := range vc.Comments.All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
//
// # Error Handling
//
// metasonic distinguishes between fatal errors, block errors and warnings:
//
//   - Fatal errors stop the parse: a missing marker, a truncated header or
//     payload, a failing reader, a cancelled context, ErrMetadataTooLarge.
//   - Block errors mark a recognized block whose payload did not decode. The
//     block is kept as *Raw and the error is appended to Metadata.Errors.
//   - Warnings are non-fatal oddities, such as a comment without '='.
//
// All errors match the package sentinels with errors.Is:
//
//	if errors.Is(err, metasonic.ErrTruncated) {
//		// the file was cut short
//	}
//
// # Observability
//
// The decoder does not log. Pass an Observer with WithObserver to see each
// step; NewSlogObserver, NewKitLogObserver and NewMetricsObserver cover
// log/slog, go-kit logfmt and Prometheus.
package metasonic
