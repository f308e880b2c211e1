package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hntran/tiny-drill-deck-go/internal/drill"
)

const defaultPassage = "The quick brown fox jumps over the lazy dog while the patient gray cat watches from the warm windowsill"

func main() {
	passage := defaultPassage
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Println("Error reading passage file:", err)
			os.Exit(1)
		}
		passage = string(data)
	}

	d, err := drill.NewWordDrill(passage, nil)
	if err != nil {
		fmt.Println("Error creating drill:", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Memorization drill:")
	fmt.Println("  - Press Enter to hide the next word, then recite the passage.")
	fmt.Println("  - Press Ctrl+C to exit.")
	fmt.Println("-------------------------------------------------")
	fmt.Println(d.Rendered())

	lineChan := make(chan struct{})
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				close(lineChan)
				return
			}
			lineChan <- struct{}{}
		}
	}()

	for {
		select {
		case <-sigChan:
			fmt.Println("\nBye.")
			return
		case _, ok := <-lineChan:
			if !ok {
				return
			}
			word, err := d.HideNext()
			if err != nil {
				fmt.Println("Error:", err)
				return
			}
			fmt.Printf("--- hid %q (%d/%d) ---\n", word, d.HiddenCount(), d.WordCount())
			fmt.Println(d.Rendered())
			if d.Done() {
				fmt.Println("All words hidden. Recite it one last time!")
				return
			}
		}
	}
}
