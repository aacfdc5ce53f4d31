package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bimmerbailey/onediff/internal/llm"
	"github.com/bimmerbailey/onediff/internal/output"
	"github.com/bimmerbailey/onediff/internal/pattern"
	"github.com/bimmerbailey/onediff/internal/redact"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <file>",
	Short: "Describe each discovered pattern using a local LLM",
	Long: `Group a log file the same way as the root command, then ask a local
Ollama model what the changing word of each pattern represents.

Only groups with more than one line are sent to the model.

Examples:
  onediff explain /var/log/app.log
  onediff explain --model mistral --max-groups 5 app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

// newLLMProvider is replaced in tests.
var newLLMProvider = llm.NewProvider

func init() {
	explainCmd.Flags().String("model", "", "model to use (overrides llm.ollama.model)")
	explainCmd.Flags().Int("max-groups", 10, "maximum number of patterns to explain")

	rootCmd.AddCommand(explainCmd)
}

// explainedGroup is one JSON record of the explain command.
type explainedGroup struct {
	pattern.Group
	Template    string `json:"template"`
	Explanation string `json:"explanation"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	model, _ := cmd.Flags().GetString("model")
	maxGroups, _ := cmd.Flags().GetInt("max-groups")

	if maxGroups <= 0 {
		return fmt.Errorf("--max-groups must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	groups, err := groupInput(args[0], cfg, logger)
	if err != nil {
		return err
	}

	var found []pattern.Group
	for _, g := range groups {
		if g.IsPattern() && g.Len() >= cfg.Report.MinSentences {
			found = append(found, g)
		}
	}
	if len(found) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), output.NoPatternsMessage)
		return nil
	}
	if len(found) > maxGroups {
		logger.Info("limiting explained patterns", "found", len(found), "max", maxGroups)
		found = found[:maxGroups]
	}

	provider, err := newLLMProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w\n\nTroubleshooting:\n- Ensure Ollama is running: ollama serve\n- Check provider config in ~/.onediff.yaml", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := provider.Heartbeat(ctx); err != nil {
		return fmt.Errorf("cannot connect to Ollama at %s: %w\n\nStart Ollama with: ollama serve",
			cfg.LLM.Ollama.Host, err)
	}

	if model == "" {
		model = cfg.LLM.Ollama.Model
	}
	available, err := provider.ModelAvailable(ctx, model)
	if err != nil {
		return err
	}
	if !available {
		return fmt.Errorf("%w: %s\n\nPull it with: ollama pull %s", llm.ErrModelNotFound, model, model)
	}

	chatOpts := &llm.ChatOptions{
		Model:       model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	var redactor *redact.Redactor
	if cfg.LLM.Redact {
		redactor = redact.New(cfg.LLM.RedactPatterns)
	}

	results := make([]explainedGroup, 0, len(found))
	for _, g := range found {
		resp, err := provider.Chat(ctx, []llm.Message{
			{Role: "system", Content: buildExplainSystemPrompt()},
			{Role: "user", Content: buildExplainUserPrompt(g, redactor)},
		}, chatOpts)
		if err != nil {
			return fmt.Errorf("explaining pattern %q: %w", g.Pattern, err)
		}
		logger.Debug("explained pattern", "pattern", g.Pattern, "tokens", resp.TokensTotal)

		results = append(results, explainedGroup{
			Group:       g,
			Template:    templateOf(g),
			Explanation: strings.TrimSpace(resp.Content),
		})
	}

	if n := redactor.Count(); n > 0 {
		logger.Info("redacted values before explaining", "count", n)
	}

	if output.ParseFormat(cfg.Format) == output.FormatJSON {
		return output.New(cmd.OutOrStdout(), output.FormatJSON).WriteJSON(results)
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "Pattern: %s\n", r.Template)
		fmt.Fprintf(out, "Lines: %d\n", r.Len())
		fmt.Fprintln(out, output.FormatWords(r.Words))
		fmt.Fprintf(out, "Explanation: %s\n\n", r.Explanation)
	}

	return nil
}
