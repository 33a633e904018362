package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chaos-io/removebg/bgremove"
	"github.com/chaos-io/removebg/rembg"
)

const (
	inputPath  = "/workspace/shadcn-ui/public/assets/logos/img_4026.jpg"
	outputPath = "/images/Logo.jpg"
)

func main() {
	remBG := rembg.NewServerRemBG(rembg.DefaultBaseURL)
	os.Exit(run(context.Background(), os.Stdout, remBG, inputPath, outputPath))
}

func run(ctx context.Context, w io.Writer, remBG rembg.Remover, input, output string) int {
	_, _ = fmt.Fprintf(w, "Processing %s...\n", input)

	err := bgremove.NewRemover(remBG).Run(ctx, input, output)
	switch {
	case errors.Is(err, bgremove.ErrInputNotFound):
		_, _ = fmt.Fprintf(w, "Error: Input file not found at %s\n", input)
		return 1
	case err != nil:
		_, _ = fmt.Fprintf(w, "Error processing image: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(w, "Background removed successfully. Saved to %s\n", output)
	return 0
}
