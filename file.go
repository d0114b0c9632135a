package metasonic

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/112RG/metasonic/internal/flac"
)

// File is the metadata of a FLAC file on disk.
//
// Unlike a *os.File it holds no resources; the file is closed before
// ParseFile returns.
type File struct {
	*Metadata

	// Path to the audio file
	Path string

	// File size in bytes
	Size int64
}

// Parse reads the metadata blocks of the FLAC stream in r.
//
// r is read sequentially up to the end of the last metadata block; no audio
// frames are consumed and no seeking is done. Callers reading from a file or
// socket should pass a buffered reader.
//
// A recognized block whose payload does not decode is returned as *Raw and
// the failure is recorded in Metadata.Errors; the parse continues. A broken
// marker, an unreadable block header, a short payload or a cancelled ctx
// stop the parse. In that case the returned Metadata still holds the blocks
// read before the failure.
//
// Example:
//
//	md, err := metasonic.Parse(ctx, bufio.NewReader(conn))
//	if err != nil {
//		return err
//	}
//	if vc := md.VorbisComment(); vc != nil {
//		fmt.Println(vc.Comments.First("TITLE"))
//	}
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Metadata, error) {
	options := applyOptions(opts)

	md, err := flac.NewStream(r, options.streamConfig()).ReadAll(ctx)

	// Apply option: ignore warnings
	if options.ignoreWarnings {
		md.Warnings = nil
	}

	if err != nil {
		return md, err
	}

	// Check strict parsing mode
	if options.strictParsing && len(md.Warnings) > 0 {
		return md, fmt.Errorf("strict parsing failed: %s", md.Warnings[0].Message)
	}

	return md, nil
}

// ParseFile opens path and parses its metadata.
//
// The returned error wraps the parse error, so errors.Is and errors.As see
// the sentinels and typed errors of this package. When the file was opened
// but the parse failed, the returned File is non-nil and holds the blocks
// read before the failure.
func ParseFile(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat file")
	}

	md, err := Parse(ctx, bufio.NewReader(f), opts...)
	file := &File{
		Path:     path,
		Size:     stat.Size(),
		Metadata: md,
	}
	if err != nil {
		return file, errors.Wrapf(err, "parse %s", path)
	}

	return file, nil
}

// Open parses the metadata of the file at path.
//
// It is ParseFile with a background context.
//
// Example:
//
//	file, err := metasonic.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	if si := file.StreamInfo(); si != nil {
//		fmt.Printf("%d Hz, %s\n", si.SampleRate, si.Duration())
//	}
func Open(path string, opts ...Option) (*File, error) {
	return ParseFile(context.Background(), path, opts...)
}

// ParseMany parses multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails, the remaining parses are cancelled and the first error
// is returned with no files.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := metasonic.ParseMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d blocks\n", f.Path, len(f.Blocks))
//	}
func ParseMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	files := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			file, err := ParseFile(ctx, path, opts...)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}
