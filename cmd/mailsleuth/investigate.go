package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/mailsleuth/internal/config"
	"github.com/nao1215/mailsleuth/internal/content"
	"github.com/nao1215/mailsleuth/internal/domaintrust"
	"github.com/nao1215/mailsleuth/internal/httpclient"
	"github.com/nao1215/mailsleuth/internal/identity"
	mlog "github.com/nao1215/mailsleuth/internal/log"
	"github.com/nao1215/mailsleuth/internal/model"
	"github.com/nao1215/mailsleuth/internal/pipeline"
	"github.com/nao1215/mailsleuth/internal/platform"
	"github.com/nao1215/mailsleuth/internal/probe"
	"github.com/nao1215/mailsleuth/internal/report"
	"github.com/spf13/cobra"
)

// investigator runs one investigation. *pipeline.Pipeline satisfies it.
type investigator interface {
	Run(ctx context.Context, email string) (*model.InvestigationReport, error)
}

// NewInvestigateCmd creates the investigate command.
func NewInvestigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investigate <email>",
		Short: "Investigate the public footprint of an email address",
		Long: `Investigate derives names and usernames from an email address and looks for:
- Matching profiles on social, developer and creative platforms
- GitHub accounts that publish the address
- Domain age and SPF/DMARC records of the mail domain

The result is printed and saved as report_<username>_<timestamp>.json.

Examples:
  # Investigate an address
  mailsleuth investigate jane.doe@example.com

  # Print the full report as JSON and skip the report file
  mailsleuth investigate --json --no-save jane.doe@example.com

  # Go through a SOCKS5 proxy with at most 2 requests per second
  mailsleuth investigate --proxy 127.0.0.1:1080 --rate-limit 2 jane.doe@example.com

Configuration file (.mailsleuth) example:
  platforms:
    facebook:
      disabled: true
    linkedin:
      headers:
        Cookie: "li_at=..."
  sentiment:
    provider: openai
    api_key_env: OPENAI_API_KEY`,
		Args: cobra.ExactArgs(1),
		RunE: runInvestigateCmd,
	}

	// Probe behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each profile request and the GitHub search")
	cmd.Flags().Duration("domain-timeout", config.DefaultDomainTimeout,
		"Timeout for each WHOIS and DNS query")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of platforms probed at once")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy for profile requests (e.g., 127.0.0.1:1080)")
	cmd.Flags().Float64("rate-limit", 0,
		"Maximum profile requests per second (0 disables the limit)")
	cmd.Flags().StringSlice("dns-server", nil,
		"DNS server for MX/TXT lookups (repeatable)")
	cmd.Flags().Bool("no-github", false,
		"Skip the GitHub search for accounts publishing the address")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mailsleuth in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for the saved JSON report")
	cmd.Flags().Bool("no-save", false,
		"Do not save the JSON report file")

	return cmd
}

// runInvestigateCmd executes the investigate command.
func runInvestigateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := identity.ValidateEmail(cfg.Email); err != nil {
		return err
	}

	logger := mlog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collab, err := buildCollaborators(cfg, logger)
	if err != nil {
		return err
	}
	p := pipeline.DefaultPipeline(collab)

	return runInvestigation(ctx, cfg, p, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the
// configuration file. Flags given on the command line win over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error

	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.DomainTimeout, err = flags.GetDuration("domain-timeout"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = flags.GetFloat64("rate-limit"); err != nil {
		return nil, err
	}
	if cfg.DNSServers, err = flags.GetStringSlice("dns-server"); err != nil {
		return nil, err
	}
	noGitHub, err := flags.GetBool("no-github")
	if err != nil {
		return nil, err
	}
	cfg.GitHubSearch = !noGitHub

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.NoSave, err = flags.GetBool("no-save"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// An explicit config path must exist. Without one, a missing file
	// simply means no file settings.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file, flags.Changed)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if len(args) > 0 {
		cfg.Email = args[0]
	}

	return cfg, nil
}

// buildCollaborators wires the network clients, the platform catalog and
// the analyzers for the default pipeline.
func buildCollaborators(cfg *config.Config, logger *slog.Logger) (pipeline.Collaborators, error) {
	clientOpts := []httpclient.Option{
		httpclient.WithMaxBodySize(cfg.MaxBodySize),
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, httpclient.WithUserAgent(cfg.UserAgent))
	}
	if cfg.ProxyAddress != "" {
		clientOpts = append(clientOpts, httpclient.WithProxy(cfg.ProxyAddress))
	}
	if cfg.RateLimit > 0 {
		clientOpts = append(clientOpts, httpclient.WithRateLimit(cfg.RateLimit))
	}
	client, err := httpclient.New(clientOpts...)
	if err != nil {
		return pipeline.Collaborators{}, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	file := cfg.File
	if file == nil {
		file = &config.File{}
	}

	catalog := platform.Default()
	var disabled []model.Platform
	for _, name := range file.DisabledPlatforms() {
		p := model.ParsePlatform(name)
		if p == model.PlatformUnknown {
			logger.Warn("unknown platform in config file", "platform", name)
			continue
		}
		disabled = append(disabled, p)
	}
	if len(disabled) > 0 {
		catalog = catalog.Without(disabled...)
	}

	probeOpts := []probe.Option{
		probe.WithConcurrency(cfg.Concurrency),
		probe.WithTimeout(cfg.Timeout),
		probe.WithLogger(logger),
		probe.WithAnnotator(buildAnnotator(file.Sentiment, logger)),
	}
	for _, p := range catalog.Platforms() {
		if settings := file.PlatformSettings(p.String()); len(settings.Headers) > 0 {
			probeOpts = append(probeOpts, probe.WithPlatformHeaders(p, settings.Headers))
		}
	}

	resolverOpts := []domaintrust.ResolverOption{
		domaintrust.WithDNSTimeout(cfg.DomainTimeout),
	}
	if len(cfg.DNSServers) > 0 {
		resolverOpts = append(resolverOpts, domaintrust.WithServers(cfg.DNSServers...))
	}
	domain := domaintrust.New(
		domaintrust.NewWhois(cfg.DomainTimeout),
		domaintrust.NewDNSResolver(resolverOpts...),
		domaintrust.WithTimeout(cfg.DomainTimeout),
		domaintrust.WithLogger(logger),
	)

	return pipeline.Collaborators{
		Fetcher:       client,
		Catalog:       catalog,
		Orchestrator:  probe.New(client, probeOpts...),
		Domain:        domain,
		GitHubSearch:  cfg.GitHubSearch,
		GitHubTimeout: cfg.Timeout,
		ToolVersion:   getVersion(),
		Logger:        logger,
	}, nil
}

// buildAnnotator returns an annotator backed by the configured analyzer.
// Without an API key only local keyword extraction runs.
func buildAnnotator(s config.SentimentConfig, logger *slog.Logger) *content.Annotator {
	var analyzer content.Analyzer = content.NopAnalyzer{}
	if s.Enabled() {
		opts := []content.OpenAIOption{content.WithAnalyzerLogger(logger)}
		if s.Model != "" {
			opts = append(opts, content.WithModel(s.Model))
		}
		if s.BaseURL != "" {
			opts = append(opts, content.WithBaseURL(s.BaseURL))
		}
		analyzer = content.NewOpenAIAnalyzer(s.APIKey(), opts...)
		logger.Debug("sentiment analysis enabled", "model", s.Model, "base_url", s.BaseURL)
	}
	return content.NewAnnotator(analyzer, content.WithLogger(logger))
}

// runInvestigation runs the pipeline, prints the report to out and saves
// the JSON file unless disabled. A failed save is reported but does not
// fail the run.
func runInvestigation(ctx context.Context, cfg *config.Config, inv investigator, out, errOut io.Writer, logger *slog.Logger) error {
	logger.Info("starting investigation",
		"email", cfg.Email,
		"concurrency", cfg.Concurrency,
		"githubSearch", cfg.GitHubSearch,
	)

	fmt.Fprintf(errOut, "Investigating %s...\n", mlog.MaskEmails(cfg.Email))

	r, err := inv.Run(ctx, cfg.Email)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("investigation canceled: %w", err)
		}
		return fmt.Errorf("investigation failed: %w", err)
	}

	if err := outputReport(cfg, r, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.NoSave {
		return nil
	}
	path, err := report.SaveJSON(cfg.OutputDir, r)
	if err != nil {
		logger.Error("failed to save report", "dir", cfg.OutputDir, "error", err)
		fmt.Fprintf(errOut, "Warning: report was not saved: %v\n", err)
		return nil
	}
	fmt.Fprintf(errOut, "Report saved to: %s\n", path)
	return nil
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, r *model.InvestigationReport, out io.Writer) error {
	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
	_, err := w.Write(r)
	return err
}
