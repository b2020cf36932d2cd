// Package main provides the entry point for the voicebox MCP server.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voicebox-mcp/voicebox/server"
	"github.com/voicebox-mcp/voicebox/tts"
	"github.com/voicebox-mcp/voicebox/tts/audio"
	"github.com/voicebox-mcp/voicebox/tts/engines/openai"
	"github.com/voicebox-mcp/voicebox/tts/engines/say"
	"github.com/voicebox-mcp/voicebox/tts/voices"
)

var (
	// Version as provided by goreleaser.
	Version = ""

	verbose    bool
	configFile string
	noFallback bool

	rootCmd = &cobra.Command{
		Use:   "voicebox",
		Short: "Text-to-speech MCP server",
		Long: `Text-to-speech MCP server.

Exposes a single "say" tool that speaks text aloud through the OS speech
engine or the OpenAI speech API. Set OPENAI_API_KEY to enable the OpenAI
engine; without it everything runs on the system voices.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			return loadConfigFile()
		},
		RunE: serve,
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List the installed system voices",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return listVoices(os.Stdout)
		},
	}
)

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := tts.LoadConfig()
	if err != nil {
		return err
	}
	cfg = tts.LoadConfigFromViper(cfg)
	if cmd.Flags().Changed("no-fallback") {
		cfg.FallbackEnabled = !noFallback
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	selector := tts.NewSelector(tts.Backends{
		Local:  say.New(),
		Cloud:  openai.New(cfg.OpenAIAPIKey, cfg.OutputDir),
		Player: audio.NewPlayer(),
		Voices: voices.Discover(),
	}, cfg)

	janitor := audio.NewJanitor(cfg.OutputDir, cfg.MaxAudioAge, cfg.CleanupInterval)
	janitor.Start()
	defer janitor.Stop()

	return server.New(selector, Version).Run(cmd.Context())
}

func listVoices(w io.Writer) error {
	dir := voices.Discover()
	vs := dir.Voices()
	if len(vs) == 0 {
		fmt.Fprintln(w, "No system voices found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLANGUAGE\tGENDER\tQUALITY")
	for _, v := range vs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Language, v.Gender, v.Quality)
	}
	return tw.Flush()
}

// loadConfigFile reads an optional YAML config file into Viper. A missing
// file is fine; a malformed one is not.
func loadConfigFile() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(home + "/voicebox")
		}
		viper.SetConfigName("voicebox")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configFile == "" {
			return nil
		}
		if os.IsNotExist(err) && configFile == "" {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	log.Debug("using configuration file", "path", viper.ConfigFileUsed())
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env file", "err", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Logs go to stderr; stdout belongs to the MCP transport.
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	logger := log.New(os.Stderr)
	logger.SetStyles(styles)
	log.SetDefault(logger)

	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: voicebox.yaml in the user config dir)")
	rootCmd.Flags().BoolVar(&noFallback, "no-fallback", false, "do not retry cloud failures on the local engine")

	rootCmd.AddCommand(voicesCmd)
}
