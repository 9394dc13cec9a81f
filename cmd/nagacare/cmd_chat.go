package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nagacare/internal/assistant"
	"nagacare/internal/config"
	"nagacare/internal/llm"
	"nagacare/internal/service"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session with the health assistant",
	Long: `Opens a conversation with the assistant on stdin/stdout.

Commands inside the session:
  /clear            start over with an empty history
  /tip <category>   ask for a health tip (general, nutrition, exercise,
                    mental_health, hygiene, dengue)
  /history          print the conversation so far
  exit              leave the session`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := llm.NewChatClient(cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	if err != nil {
		return err
	}
	conv := assistant.NewConversation("", client, assistant.Options{
		SystemPrompt: cfg.AssistantPrompt,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return chatLoop(ctx, conv, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatLoop lee una linea por turno hasta exit, EOF o cancelacion de ctx (Ctrl-C).
func chatLoop(ctx context.Context, conv *assistant.Conversation, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := readLines(ctx, in)

	fmt.Fprintln(out, "---- NagaCare assistant (type 'exit' to quit, /tip <category> for health tips) ----")
	for {
		fmt.Fprint(out, "You > ")
		var raw string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			raw = l
		}
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
			return nil
		case line == "/clear":
			conv.Clear()
			fmt.Fprintln(out, "History cleared.")
			continue
		case line == "/history":
			if text := service.FormatTranscript(conv.History()); text != "" {
				fmt.Fprintln(out, text)
			}
			continue
		case strings.HasPrefix(line, "/tip"):
			category, err := assistant.ParseTipCategory(strings.TrimSpace(strings.TrimPrefix(line, "/tip")))
			if err != nil {
				fmt.Fprintf(out, "Unknown category. Try one of: %s\n", joinCategories())
				continue
			}
			reply, err := conv.HealthTip(ctx, category)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "NagaCare > %s\n", reply)
			continue
		}

		reply, err := conv.SendMessage(ctx, line)
		if err != nil {
			logger.Warn("send message failed", zap.Error(err))
			continue
		}
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return nil
		}
		fmt.Fprintf(out, "NagaCare > %s\n", reply)
	}
}

// readLines escanea in en una goroutine para que el loop pueda esperar ctx.Done
// mientras el usuario no escribe nada. scanErr recibe el error antes de cerrar lines.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func joinCategories() string {
	cats := assistant.TipCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
