package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
)

var zstd_magic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// write_raw writes data to path, zstd compressed when compress is true.
func write_raw(path string, data []byte, compress bool) (err error) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("could not open output file %q: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close output file %q: %w", path, cerr)
		}
	}()
	if !compress {
		_, err = out.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(out,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return err
	}
	if _, err = enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	if err = enc.Close(); err != nil {
		return err
	}
	slog.Debug("wrote compressed buffer", "file", path, "size", len(data))
	return nil
}

// read_raw reads a buffer written by write_raw, detecting compression from
// the zstd frame magic.
func read_raw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	if !bytes.HasPrefix(data, zstd_magic) {
		return data, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	ans, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("could not decompress %q: %w", path, err)
	}
	return ans, nil
}
