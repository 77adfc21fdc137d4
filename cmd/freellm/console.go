package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/apifreellm/freellm-go/chat"
	"github.com/apifreellm/freellm-go/internal/logutil"
	"github.com/apifreellm/freellm-go/internal/textutil"
)

func newConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive chat with conversation context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("console requires an interactive terminal")
			}

			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}

			client := chat.New(chat.ConfigFromViper(viper.GetViper()), chat.WithLogger(logger))
			defer client.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "freellm console. /history, /clear, /quit")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
					continue
				case line == "/quit", line == "/exit":
					return nil
				case line == "/clear":
					client.ClearHistory()
					fmt.Fprintln(out, "history cleared")
					continue
				case line == "/history":
					printHistory(cmd, client.History())
					continue
				}

				if err := textutil.ValidateMessage(line, 0); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				resp, err := client.ChatWithContext(cmd.Context(), line)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				fmt.Fprintln(out, resp.Text)
			}
		},
	}
	return cmd
}

func printHistory(cmd *cobra.Command, h *chat.History) {
	out := cmd.OutOrStdout()
	msgs := h.Messages()
	if len(msgs) == 0 {
		fmt.Fprintln(out, "(empty)")
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(out, "%s: %s\n", m.Role, textutil.Truncate(m.Content, 120))
	}
}
