// oggprobe inspects, verifies, and rewrites Ogg bitstreams.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avbits/ogg"
	"github.com/avbits/ogg/internal/observability"
)

var (
	flagVerbose bool
	flagQuiet   bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "oggprobe",
	Short: "Inspect, verify, and rewrite Ogg bitstreams",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case flagQuiet:
			logger = observability.Silent()
		case flagVerbose:
			logger = observability.InitLogger("oggprobe", zerolog.DebugLevel)
		default:
			logger = observability.InitLogger("oggprobe", zerolog.WarnLevel)
		}
	},
	SilenceUsage: true,
}

var pagesCmd = &cobra.Command{
	Use:   "pages FILE",
	Short: "Dump the page headers of a bitstream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInput(args[0], runPages)
	},
}

var packetsCmd = &cobra.Command{
	Use:   "packets FILE",
	Short: "Demultiplex a bitstream and list its packets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInput(args[0], runPackets)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check framing integrity, exiting nonzero on any damage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInput(args[0], runVerify)
	},
}

var remuxCmd = &cobra.Command{
	Use:   "remux FILE",
	Short: "Demultiplex a bitstream and write it back out with fresh framing",
	Long: `Remux reads every packet of the input and rebuilds the pages around
them, repairing checksum damage and normalizing page sizes. Settings come
from flags or an optional TOML config file; flags win.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemuxConfig(cmd)
		if err != nil {
			return err
		}
		return withInput(args[0], func(src io.Reader) error {
			return runRemux(src, cfg)
		})
	},
}

func withInput(path string, fn func(io.Reader) error) error {
	if path == "-" {
		return fn(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func runPages(src io.Reader) error {
	r := ogg.NewReader(src, ogg.WithReaderLogger(logger))
	n := 0
	for {
		page, err := r.NextPage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		flags := ""
		if page.IsContinuation() {
			flags += "c"
		}
		if page.IsBOS() {
			flags += "b"
		}
		if page.IsEOS() {
			flags += "e"
		}
		granule := fmt.Sprintf("%d", page.GranulePos)
		if page.GranulePos == ogg.NoGranule {
			granule = "-"
		}
		fmt.Printf("page %4d  serial=%08x seq=%-6d granule=%-12s segs=%-3d body=%-5d flags=%s\n",
			n, page.Serial, page.Sequence, granule, len(page.Segments), page.BodySize(), flags)
		n++
	}
	if skipped := r.Skipped(); skipped > 0 {
		logger.Warn().Int("bytes", skipped).Msg("discarded during resync")
	}
	return nil
}

func runPackets(src io.Reader) error {
	r := ogg.NewReader(src, ogg.WithReaderLogger(logger))
	n := 0
	for {
		pkt, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		state := ""
		if pkt.BOS {
			state += " bos"
		}
		if pkt.EOS {
			state += " eos"
		}
		if pkt.Truncated {
			state += " truncated"
		}
		fmt.Printf("packet %4d  serial=%08x len=%-6d granule=%d%s\n",
			n, pkt.Serial, len(pkt.Data), pkt.GranulePos, state)
		n++
	}
	return nil
}

func runVerify(src io.Reader) error {
	r := ogg.NewReader(src, ogg.WithReaderLogger(logger))
	packets := 0
	for {
		_, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		packets++
	}

	skipped := r.Skipped()
	warnings := r.Warnings()
	fmt.Printf("%d packets, %d bytes skipped, %d warnings\n", packets, skipped, len(warnings))
	for _, w := range warnings {
		fmt.Println("  " + w.String())
	}
	if skipped > 0 || len(warnings) > 0 {
		return fmt.Errorf("bitstream damaged")
	}
	return nil
}

func runRemux(src io.Reader, cfg remuxConfig) error {
	out := io.Writer(os.Stdout)
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	r := ogg.NewReader(src,
		ogg.WithReaderLogger(logger),
		ogg.WithReaderMaxResyncDistance(cfg.MaxResync))
	w := ogg.NewWriter(out, ogg.WithMaxPageBody(cfg.MaxPageBody))

	for {
		pkt, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if pkt.Truncated {
			logger.Warn().Uint32("serial", pkt.Serial).Msg("dropping truncated tail packet")
			continue
		}
		if err := w.WritePacket(pkt.Serial, pkt.Data, pkt.GranulePos); err != nil {
			return err
		}
		if pkt.EOS {
			if err := w.CloseStream(pkt.Serial); err != nil {
				return err
			}
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	if skipped := r.Skipped(); skipped > 0 {
		logger.Warn().Int("bytes", skipped).Msg("input damage repaired")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress all logging")

	remuxCmd.Flags().String("config", "", "TOML config file")
	remuxCmd.Flags().StringP("output", "o", "-", "output file (default stdout)")
	remuxCmd.Flags().Int("max-page-body", ogg.DefaultMaxPageBody, "page body size triggering page emission")
	remuxCmd.Flags().Int("max-resync", ogg.DefaultMaxResyncDistance, "bytes scanned past damage before giving up")

	rootCmd.AddCommand(pagesCmd, packetsCmd, verifyCmd, remuxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "oggprobe:", err)
		os.Exit(1)
	}
}
