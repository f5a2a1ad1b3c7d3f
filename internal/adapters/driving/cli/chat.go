package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the assistant a question",
	Long: `Sends a question to the knowledge-base assistant and prints the reply.

With no message, starts an interactive session. Type 'exit' or 'quit'
(or send EOF) to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errNotConfigured("chat")
	}

	ctx := commandContext(cmd)
	conv := chatService.NewConversation()
	if len(args) > 0 {
		return sendAndPrint(ctx, cmd, conv, strings.Join(args, " "))
	}
	return runChatREPL(ctx, cmd, conv)
}

func runChatREPL(ctx context.Context, cmd *cobra.Command, conv *domain.Conversation) error {
	in := cmd.InOrStdin()
	interactive := isTerminal(in)

	cmd.Println(accentText("Chat with the assistant (type 'exit' to quit)"))

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			cmd.Print(successText("\nYou: "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			break
		}
		// Failures are already in the transcript; keep the session going.
		_ = sendAndPrint(ctx, cmd, conv, line)
	}
	return scanner.Err()
}

func sendAndPrint(ctx context.Context, cmd *cobra.Command, conv *domain.Conversation, query string) error {
	err := withSpinner(cmd, "Thinking...", func() error {
		return chatService.Send(ctx, conv, query)
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}

	last, ok := conv.Last()
	if !ok {
		return err
	}
	switch last.Role {
	case domain.RoleAssistant:
		cmd.Printf("%s %s\n", accentText("Assistant:"), last.Text)
	case domain.RoleError:
		cmd.Printf("%s %s\n", errorText("Error:"), last.Text)
	}
	return err
}
