package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client settings",
	Long: `View and change client settings stored in ~/.vimed/config.toml.

Keys use dot notation, for example backend.base_url or query.top_k.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. An empty value clears optional settings.

Keys:
  backend.base_url         Backend URL (default http://localhost:8000)
  backend.timeout_seconds  Request timeout in seconds (default 120)
  backend.max_rps          Requests per second, 0 for unlimited
  query.top_k              Passages per answer (default 5)
  upload.watch_dir         Folder whose new PDFs are staged automatically
  graph.cache_dir          Where fetched graphs are stored
  log.file                 Log file used by the interactive UI`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.Backend.Timeout())
	cmd.Printf("  Rate limit: %s\n", rateLabel(settings.Backend.MaxRequestsPerSecond))
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Top K: %d\n", settings.Query.TopK)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Watch folder: %s\n", orUnset(settings.Upload.WatchDir))
	cmd.Println()

	cmd.Println("[Graph]")
	cmd.Printf("  Cache dir: %s\n", orDefault(settings.Graph.CacheDir))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  File: %s\n", orDefault(settings.Log.File))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	key, value := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if err := s.Settings.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, orUnset(value))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	cmd.Println(s.Settings.ConfigPath())
	return nil
}

func rateLabel(rps int) string {
	if rps <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d req/s", rps)
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
