package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apifreellm/freellm-go/chat"
	"github.com/apifreellm/freellm-go/internal/logutil"
	"github.com/apifreellm/freellm-go/internal/textutil"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one message and print the reply",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := ""
			if len(args) == 1 {
				message = args[0]
			}
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("missing message argument")
			}
			if err := textutil.ValidateMessage(message, 0); err != nil {
				return err
			}

			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}

			client := chat.New(chat.ConfigFromViper(viper.GetViper()), chat.WithLogger(logger))
			defer client.Close()

			opts := callOptionsFromFlags(cmd)
			resp, err := client.Chat(cmd.Context(), message, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatResponse(resp))
			return nil
		},
	}

	cmd.Flags().String("model", "", "Model to use for this call.")
	cmd.Flags().Float64("temperature", -1, "Sampling temperature (0.0 to 2.0).")
	cmd.Flags().Int("max-tokens", 0, "Maximum tokens to generate.")
	return cmd
}

func callOptionsFromFlags(cmd *cobra.Command) []chat.CallOption {
	var opts []chat.CallOption
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		opts = append(opts, chat.WithModel(model))
	}
	if cmd.Flags().Changed("temperature") {
		t, _ := cmd.Flags().GetFloat64("temperature")
		opts = append(opts, chat.WithTemperature(t))
	}
	if cmd.Flags().Changed("max-tokens") {
		n, _ := cmd.Flags().GetInt("max-tokens")
		opts = append(opts, chat.WithMaxTokens(n))
	}
	return opts
}

func formatResponse(resp *chat.Response) string {
	var b strings.Builder
	b.WriteString(resp.Text)
	if resp.Model != "" {
		b.WriteString("\n\nmodel: " + resp.Model)
	}
	if len(resp.Usage) > 0 {
		b.WriteString(fmt.Sprintf("\nusage: %v", resp.Usage))
	}
	return b.String()
}
