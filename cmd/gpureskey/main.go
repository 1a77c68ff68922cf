// Command gpureskey prints the native format table and decodes packed
// render-pass words.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpures/caps"
	"github.com/gogpu/gpures/reskey"
)

func main() {
	var (
		allFeatures = flag.Bool("features", false, "enable every optional device feature")
		samples     = flag.Uint("samples", caps.DefaultMaxSampleCount, "device max sample count")
		decode      = flag.String("renderpass", "", "packed render-pass word to decode (hex or decimal)")
	)
	flag.Parse()

	var features gputypes.Features
	if *allFeatures {
		features = ^gputypes.Features(0)
	}
	c := caps.New(features, caps.WithMaxSampleCount(uint32(*samples)))

	if *decode != "" {
		if err := printRenderPass(c, *decode); err != nil {
			log.Fatalf("decode: %v", err)
		}
		return
	}
	printFormats(c)
}

func printFormats(c *caps.Caps) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tFORMAT\tFLAGS\tMAX SAMPLES\tCOLOR TYPES")
	for i, f := range caps.Formats() {
		fi := c.FormatInfo(f)
		cts := make([]string, 0, len(fi.ColorTypeInfos))
		for _, cti := range fi.ColorTypeInfos {
			cts = append(cts, cti.ColorType.String())
		}
		fmt.Fprintf(w, "%d\t%v\t%v\t%d\t%s\n", i, f, fi.Flags, c.MaxRenderTargetSampleCount(f), strings.Join(cts, ","))
	}
	_ = w.Flush()
}

func printRenderPass(c *caps.Caps, s string) error {
	word, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	f := reskey.UnpackRenderPassFields(uint32(word))
	rp, err := reskey.RenderPassFromFields(c, f)
	if err != nil {
		return err
	}
	fmt.Printf("fields:  %+v\n", f)
	fmt.Printf("color:   %v load=%d store=%d\n", rp.ColorAttachment.Info, rp.ColorAttachment.LoadOp, rp.ColorAttachment.StoreOp)
	if rp.ColorResolveAttachment.IsValid() {
		fmt.Printf("resolve: %v load=%d store=%d\n", rp.ColorResolveAttachment.Info, rp.ColorResolveAttachment.LoadOp, rp.ColorResolveAttachment.StoreOp)
	}
	if rp.DepthStencilAttachment.IsValid() {
		fmt.Printf("depth:   %v load=%d store=%d\n", rp.DepthStencilAttachment.Info, rp.DepthStencilAttachment.LoadOp, rp.DepthStencilAttachment.StoreOp)
	}
	return nil
}
