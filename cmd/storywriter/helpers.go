package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fogfish/opts"
	storywriter "github.com/gdoct/ai-storywriter-sub001"
	"github.com/gdoct/ai-storywriter-sub001/events"
	"github.com/gdoct/ai-storywriter-sub001/internal/broker"
	"github.com/gdoct/ai-storywriter-sub001/internal/config"
	"github.com/gdoct/ai-storywriter-sub001/pkg/natsx"
	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/gdoct/ai-storywriter-sub001/provider"
	"github.com/gdoct/ai-storywriter-sub001/provider/endpoints"
	"github.com/spf13/cobra"
)

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(loaded)
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return loaded, nil
}

func applyOverrides(c *config.Config) {
	if endpointName != "" {
		c.Endpoint = endpointName
	}
	if natsURL != "" {
		c.NATSURL = natsURL
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if verbose {
		c.LogLevel = "debug"
	}
}

// newGenerator wires the selected endpoint, the event broker and the logging
// hook. The returned func releases the broker connection.
func newGenerator() (*storywriter.Generator, func(), error) {
	registry, err := endpoints.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	p, err := registry.Get(cfg.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	options := []opts.Option[storywriter.Generator]{
		storywriter.WithHooks(events.LoggingHook()),
	}
	release := func() {}
	if cfg.NATSURL != "" {
		conn, err := natsx.NewClient(cfg.NATSURL)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, storywriter.WithBroker(broker.NATS(conn)))
		release = func() {
			if err := conn.Drain(); err != nil {
				slog.Warn("failed to drain nats connection", slogx.Error(err))
			}
		}
	}
	return storywriter.New(p, options...), release, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("system", "", "system message")
	cmd.Flags().Float64("temperature", 0, "sampling temperature (default from config)")
	cmd.Flags().Int("max-tokens", 0, "maximum tokens to generate (default from config)")
}

// buildRequest assembles a request from the prompt arguments, the request
// flags and the config defaults.
func buildRequest(cmd *cobra.Command, args []string) (provider.CompletionRequest, error) {
	prompt, err := readPrompt(args, cmd.InOrStdin())
	if err != nil {
		return provider.CompletionRequest{}, err
	}
	system, _ := cmd.Flags().GetString("system")

	req := provider.CompletionRequest{
		SystemMessage: system,
		UserMessage:   prompt,
		Model:         cfg.ResolveModel(modelName),
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
	}
	if cmd.Flags().Changed("temperature") {
		req.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	}
	if cmd.Flags().Changed("max-tokens") {
		req.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
	}
	return req, req.Validate()
}

// readPrompt joins the arguments, or reads stdin when the only argument is "-".
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading prompt: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.Join(args, " "), nil
}

// await waits for the task, cancelling it on SIGINT or SIGTERM.
func await[T any](ctx context.Context, h *storywriter.Handle[T]) (T, error) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-h.Done():
	case <-sigCtx.Done():
		h.Cancel()
	}
	return h.Get(context.WithoutCancel(ctx))
}

// taskError turns a cancelled task into a short message for the terminal.
func taskError(err error) error {
	if errors.Is(err, storywriter.ErrCancelled) {
		return errors.New("generation cancelled")
	}
	var statusErr *provider.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("endpoint %q: %w", cfg.Endpoint, err)
	}
	return err
}

// progressPrinter writes only the part of the progress value that was not
// printed yet. A value that does not extend the printed text starts a new
// line.
type progressPrinter struct {
	w       io.Writer
	printed string
}

func (p *progressPrinter) Print(text string) {
	if rest, ok := strings.CutPrefix(text, p.printed); ok {
		fmt.Fprint(p.w, rest)
	} else {
		fmt.Fprint(p.w, "\n"+text)
	}
	p.printed = text
}

// Finish ends the output with a newline if anything was printed.
func (p *progressPrinter) Finish() {
	if p.printed != "" {
		fmt.Fprintln(p.w)
	}
}
