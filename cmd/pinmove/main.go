package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/stablemem/pinmove/arena"
	"github.com/stablemem/pinmove/pin"
	"github.com/stablemem/pinmove/secret"
)

func main() {
	var (
		payload     = flag.String("secret", "hunter2", "Secret payload to move between slots")
		slots       = flag.Int("slots", 3, "Number of pinned slots")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pin.SetLogger(logger)
		arena.SetLogger(logger)
	}

	if *slots < 2 {
		fmt.Fprintln(os.Stderr, "Usage: pinmove [-secret payload] [-slots n>=2]")
		fmt.Fprintln(os.Stderr, "       pinmove -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*slots); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*payload, *slots); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run seeds the first slot with the secret and walks it down the chain,
// printing the slot states after every hop.
func run(payload string, n int) error {
	ctx := context.Background()

	lin, err := arena.NewLinear(ctx, &arena.LinearConfig{Pages: 1, MaxPages: 4})
	if err != nil {
		return err
	}
	defer lin.Close(ctx)

	slabs := arena.New[secret.Bytes]()
	defer slabs.Close()

	slots := make([]*pin.Slot[secret.Bytes], n)
	for i := range slots {
		if slots[i], err = slabs.Allocate(); err != nil {
			return err
		}
	}

	buf := []byte(payload)
	if err := secret.Seed(slots[0], lin, buf); err != nil {
		return err
	}
	fmt.Printf("seeded slot 0; caller buffer is now %q\n", buf)
	printSlots(slots, 0)

	for i := 1; i < n; i++ {
		h, err := pin.Transfer(slots[i-1], slots[i])
		if err != nil {
			return fmt.Errorf("transfer %d -> %d: %w", i-1, i, err)
		}
		var preview string
		if err := h.Value().Reveal(func(b []byte) { preview = string(b) }); err != nil {
			h.Release()
			return err
		}
		h.Release()

		fmt.Printf("transfer %d -> %d done; payload intact (%q)\n", i-1, i, preview)
		printSlots(slots, i)
	}

	return nil
}

func printSlots(slots []*pin.Slot[secret.Bytes], active int) {
	for i, s := range slots {
		fmt.Print("  ", renderSlot(i, s, i == active), "\n")
	}
}
