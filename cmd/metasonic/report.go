package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/112RG/metasonic"
)

type streamInfoReport struct {
	SampleRate   uint32 `yaml:"sample_rate"`
	Channels     uint8  `yaml:"channels"`
	BitDepth     uint8  `yaml:"bit_depth"`
	TotalSamples uint64 `yaml:"total_samples"`
	Duration     string `yaml:"duration"`
	MinBlockSize uint16 `yaml:"min_block_size"`
	MaxBlockSize uint16 `yaml:"max_block_size"`
	MinFrameSize uint32 `yaml:"min_frame_size"`
	MaxFrameSize uint32 `yaml:"max_frame_size"`
	MD5          string `yaml:"md5"`
}

type blockReport struct {
	Type   string `yaml:"type"`
	Length int    `yaml:"length,omitempty"`
}

type fileReport struct {
	Path       string            `yaml:"path"`
	Size       int64             `yaml:"size"`
	StreamInfo *streamInfoReport `yaml:"streaminfo,omitempty"`
	Vendor     string            `yaml:"vendor,omitempty"`
	Tags       yaml.MapSlice     `yaml:"tags,omitempty"`
	Blocks     []blockReport     `yaml:"blocks"`
	Errors     []string          `yaml:"errors,omitempty"`
	Warnings   []string          `yaml:"warnings,omitempty"`
	Fatal      string            `yaml:"fatal,omitempty"`
}

func newFileReport(f *metasonic.File) *fileReport {
	r := &fileReport{
		Path: f.Path,
		Size: f.Size,
	}

	if si := f.StreamInfo(); si != nil {
		r.StreamInfo = &streamInfoReport{
			SampleRate:   si.SampleRate,
			Channels:     si.Channels,
			BitDepth:     si.BitDepth,
			TotalSamples: si.TotalSamples,
			Duration:     si.Duration().Round(time.Millisecond).String(),
			MinBlockSize: si.MinBlockSize,
			MaxBlockSize: si.MaxBlockSize,
			MinFrameSize: si.MinFrameSize,
			MaxFrameSize: si.MaxFrameSize,
			MD5:          hex.EncodeToString(si.MD5[:]),
		}
	}

	if vc := f.VorbisComment(); vc != nil {
		r.Vendor = vc.Vendor
		for key, values := range vc.Comments.All() {
			var v any = values
			if len(values) == 1 {
				v = values[0]
			}
			r.Tags = append(r.Tags, yaml.MapItem{Key: key, Value: v})
		}
	}

	r.Blocks = make([]blockReport, 0, len(f.Blocks))
	for _, b := range f.Blocks {
		br := blockReport{Type: b.Type().String()}
		if raw, ok := b.(*metasonic.Raw); ok {
			br.Length = len(raw.Data)
		}
		r.Blocks = append(r.Blocks, br)
	}

	for _, err := range f.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	for _, w := range f.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}

	return r
}

func writeYAML(w io.Writer, reports []*fileReport) error {
	out, err := yaml.Marshal(reports)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func writeText(w io.Writer, reports []*fileReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t(%d bytes)\n", r.Path, r.Size)

		if si := r.StreamInfo; si != nil {
			fmt.Fprintf(tw, "  stream:\t%d Hz, %d ch, %d bit, %d samples (%s)\n",
				si.SampleRate, si.Channels, si.BitDepth, si.TotalSamples, si.Duration)
			fmt.Fprintf(tw, "  md5:\t%s\n", si.MD5)
		}
		if r.Vendor != "" {
			fmt.Fprintf(tw, "  vendor:\t%s\n", r.Vendor)
		}
		for _, item := range r.Tags {
			switch v := item.Value.(type) {
			case []string:
				for _, s := range v {
					fmt.Fprintf(tw, "  %s\t%s\n", item.Key, s)
				}
			default:
				fmt.Fprintf(tw, "  %s\t%v\n", item.Key, v)
			}
		}
		for j, b := range r.Blocks {
			if b.Length > 0 {
				fmt.Fprintf(tw, "  block %d:\t%s, %d bytes\n", j, b.Type, b.Length)
				continue
			}
			fmt.Fprintf(tw, "  block %d:\t%s\n", j, b.Type)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(tw, "  error:\t%s\n", e)
		}
		for _, warning := range r.Warnings {
			fmt.Fprintf(tw, "  warning:\t%s\n", warning)
		}
		if r.Fatal != "" {
			fmt.Fprintf(tw, "  fatal:\t%s\n", r.Fatal)
		}
	}
	return tw.Flush()
}
