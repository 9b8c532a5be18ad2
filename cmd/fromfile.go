package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var fromFileCmd = &cobra.Command{
	Use:   "from-file <path>",
	Short: "Download every URL listed in a file",
	Long: `Reads one URL per line from the given file and downloads them in order.
Blank lines and lines starting with # are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := readURLFile(args[0])
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			return fmt.Errorf("no URLs found in %s", args[0])
		}
		return downloadAll(cmd.Context(), urls)
	},
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return urls, nil
}
