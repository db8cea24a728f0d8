package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

const chatPrompt = "> "

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk a project idea through with the assistant",
	Long: `Sends one message to the IdeaLens assistant and prints the reply.

Without a message, starts an interactive session reading one message per
line from stdin. Type /quit or press Ctrl+D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	session, err := chatController()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		reply, err := session.Send(commandContext(cmd), strings.Join(args, " "))
		if err != nil {
			if errors.Is(err, domain.ErrEmptyMessage) {
				return errors.New("enter a message for the assistant")
			}
			return err
		}
		cmd.Println(reply.Text)
		return nil
	}

	in := cmd.InOrStdin()
	return chatREPL(cmd, session, in, isTerminal(in))
}

func chatREPL(cmd *cobra.Command, session driving.ChatController, in io.Reader, interactive bool) error {
	ctx := commandContext(cmd)
	scanner := bufio.NewScanner(in)

	if interactive {
		cmd.Println("Chat with the IdeaLens assistant. Type /quit to leave.")
		cmd.Print(chatPrompt)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "":
		default:
			reply, err := session.Send(ctx, line)
			if err != nil {
				return err
			}
			cmd.Println(reply.Text)
			if interactive {
				cmd.Println()
			}
		}
		if interactive {
			cmd.Print(chatPrompt)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if interactive {
		cmd.Println()
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
