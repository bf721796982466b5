package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/kovidgoyal/pixbuf"
	"github.com/kovidgoyal/pixbuf/channels"
	"github.com/kovidgoyal/pixbuf/types"
)

var _ = fmt.Print

type globals struct {
	ctx   context.Context
	out   io.Writer
	procs int
}

func (g *globals) open(input string, header bool) (*pixbuf.Pixels, error) {
	return pixbuf.OpenURL(g.ctx, input, header, pixbuf.WithProcs(g.procs))
}

type infoCmd struct {
	Input string `arg:"" help:"Image file path or URL"`
}

func (c *infoCmd) Run(g *globals) error {
	r, err := pixbuf.DecodeURL(g.ctx, c.Input)
	if err != nil {
		return err
	}
	md := r.Metadata
	fmt.Fprintf(g.out, "Format:      %s\n", md.Format)
	fmt.Fprintf(g.out, "Size:        %dx%d\n", r.Width(), r.Height())
	fmt.Fprintf(g.out, "Bits/pixel:  %d\n", r.BitsPerPixel())
	fmt.Fprintf(g.out, "Frames:      %d\n", md.NumFrames)
	if o := md.Orientation(); o != 0 {
		fmt.Fprintf(g.out, "Orientation: %d\n", o)
	}
	fmt.Fprintf(g.out, "Buffer:      %d bytes\n", r.Width()*r.Height()*4)
	return nil
}

type ChannelFlags struct {
	Order  string `help:"Channel order of the output buffer" enum:"argb,rgba,rgb" default:"argb"`
	Header bool   `help:"Prefix the buffer with the ARGB tag, only valid with --order=argb"`
}

func (o *ChannelFlags) validate() error {
	if o.Header && o.Order != "argb" {
		return fmt.Errorf("--header can only be used with --order=argb")
	}
	return nil
}

func (o *ChannelFlags) buffer(p *pixbuf.Pixels) ([]byte, error) {
	order, err := types.ParseChannelOrder(o.Order)
	if err != nil {
		return nil, err
	}
	if order == types.ARGB {
		return p.ARGB(), nil
	}
	pix := p.ARGB()
	if p.HasHeader() {
		pix = pix[pixbuf.HeaderSize:]
	}
	return channels.Convert(pix, types.ARGB, order)
}

type dumpCmd struct {
	Input string `arg:"" help:"Image file path or URL"`

	ChannelFlags `embed:""`

	Name   string `help:"Variable name to declare"`
	PerRow int    `help:"Bytes per line" default:"16"`
	Group  int    `help:"Bytes per group within a line" default:"4"`
	Spacer string `help:"Separator between groups" default:" "`
}

func (c *dumpCmd) Validate(kctx *kong.Context) error {
	if c.PerRow < 1 || c.Group < 1 {
		return fmt.Errorf("--per-row and --group must be positive")
	}
	return c.validate()
}

func (c *dumpCmd) Run(g *globals) error {
	p, err := g.open(c.Input, c.Header)
	if err != nil {
		return err
	}
	buf, err := c.buffer(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, pixbuf.HexLiteral(buf,
		pixbuf.HexVarName(c.Name), pixbuf.HexPerRow(c.PerRow), pixbuf.HexGroupCount(c.Group), pixbuf.HexGroupSpacer(c.Spacer)))
	return err
}

type rawCmd struct {
	Input  string `arg:"" help:"Image file path or URL"`
	Output string `arg:"" help:"Output buffer file" type:"path"`

	ChannelFlags `embed:""`

	Zstd bool `help:"Compress the output with zstd"`
}

func (c *rawCmd) Validate(kctx *kong.Context) error {
	return c.validate()
}

func (c *rawCmd) Run(g *globals) error {
	p, err := g.open(c.Input, c.Header)
	if err != nil {
		return err
	}
	buf, err := c.buffer(p)
	if err != nil {
		return err
	}
	if err = write_raw(c.Output, buf, c.Zstd); err != nil {
		return err
	}
	slog.Info("buffer saved", "file", c.Output, "order", c.Order, "width", p.Width(), "height", p.Height(), "bytes", len(buf))
	return nil
}

type rebuildCmd struct {
	Input  string `arg:"" help:"Canonical ARGB buffer file, optionally tagged and zstd compressed" type:"existingfile"`
	Output string `arg:"" help:"Output image, format taken from the extension" type:"path"`
	Width  int    `help:"Width in pixels" required:""`
	Height int    `help:"Height in pixels" required:""`

	Quality        int    `help:"JPEG quality, 1 to 100" default:"95"`
	PNGCompression string `name:"png-compression" help:"PNG compression level" enum:"default,none,speed,best" default:"default"`
}

var png_levels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

func (c *rebuildCmd) encode_options() []pixbuf.EncodeOption {
	ans := []pixbuf.EncodeOption{pixbuf.JPEGQuality(c.Quality)}
	if level, ok := png_levels[c.PNGCompression]; ok {
		ans = append(ans, pixbuf.PNGCompressionLevel(level))
	}
	return ans
}

func (c *rebuildCmd) Validate(kctx *kong.Context) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid size: %dx%d", c.Width, c.Height)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d", c.Quality)
	}
	if _, err := pixbuf.FormatFromFilename(c.Output); err != nil {
		return fmt.Errorf("invalid output file %q: %w", c.Output, err)
	}
	return nil
}

func (c *rebuildCmd) Run(g *globals) error {
	data, err := read_raw(c.Input)
	if err != nil {
		return err
	}
	p, err := pixbuf.FromARGB(data, c.Width, c.Height)
	if err != nil {
		return err
	}
	if err = p.Save(c.Output, c.encode_options()...); err != nil {
		return err
	}
	slog.Info("image saved", "file", c.Output, "width", c.Width, "height", c.Height)
	return nil
}

type cli struct {
	Verbose bool             `short:"v" help:"Log debug information to stderr"`
	Procs   int              `help:"Goroutines used to sample raw bitmaps, 0 means one per CPU" default:"0"`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Info    infoCmd    `cmd:"" help:"Show what the decoder reports about an image"`
	Dump    dumpCmd    `cmd:"" help:"Print the pixels of an image as a hex literal"`
	Raw     rawCmd     `cmd:"" help:"Write the pixels of an image to a raw buffer file"`
	Rebuild rebuildCmd `cmd:"" help:"Rebuild an image file from a raw ARGB buffer file"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixbuf"),
		kong.Description("Extract, convert and rebuild raw image pixel buffers."),
		kong.UsageOnError(),
		kong.Vars{"version": pixbuf.Version.String()},
	)
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	pixbuf.SetLogger(logger)
	err := kctx.Run(&globals{ctx: context.Background(), out: os.Stdout, procs: c.Procs})
	kctx.FatalIfErrorf(err)
}
