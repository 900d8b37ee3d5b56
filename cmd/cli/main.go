package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/croxz/croxz-go/internal/app"
	"github.com/croxz/croxz-go/internal/domain"
	"github.com/croxz/croxz-go/internal/infrastructure"
	"github.com/croxz/croxz-go/pkg/logger"
)

var (
	serverURL   string
	configPath  string
	interactive bool
	rootCmd     = &cobra.Command{
		Use:   "croxz",
		Short: "Croxz CLI - URL classification for the download manager",
		Long:  `Classifies URLs as direct files, media items, or playlists, and resolves media URLs through the extraction bridge.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL (history command)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&interactive, "interactive", false, "A user is present to resolve prompts")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// newManager builds an in-process classifier stack from config.
// The CLI classifies directly; only the history command talks to the server.
func newManager() (*app.ClassifyManager, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, err
	}

	runner := infrastructure.NewBridgeRunner(config.Bridge, log)
	manager := app.NewClassifyManager(nil, nil, log)
	manager.Register(app.NewMediaClassifier(runner, config.Bridge, config.Classify, log))
	manager.Register(app.NewPlaylistClassifier(runner, config.Bridge, config.Classify, log))
	return manager, nil
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

var checkCmd = &cobra.Command{
	Use:   "check [url]",
	Short: "Classify a URL without invoking the extractor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager, err := newManager()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		contentType, _ := cmd.Flags().GetString("content-type")
		printJSON(manager.Check(args[0], contentType))
	},
}

func runParse(url string, playlist bool) {
	manager, err := newManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := ""
	if playlist {
		name = "playlist"
	}

	result, err := manager.Parse(context.Background(), url, name, interactive)
	if err != nil {
		if domain.IsParseError(err) {
			fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	printJSON(result)
}

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Resolve a single media URL into downloadable formats",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runParse(args[0], false)
	},
}

var playlistCmd = &cobra.Command{
	Use:   "playlist [url]",
	Short: "Resolve a collection URL into an entry list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runParse(args[0], true)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent classifications from the server",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := http.Get(fmt.Sprintf("%s/api/v1/history?limit=%d", serverURL, limit))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var records []map[string]interface{}
		json.Unmarshal(body, &records)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tURL\tMODE\tDECISION\tOK\tCREATED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n",
				truncate(stringField(r, "id"), 8),
				truncate(stringField(r, "url"), 40),
				stringField(r, "mode"),
				stringField(r, "decision"),
				r["ok"],
				stringField(r, "created_at"))
		}
		w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("croxz 1.0.0")
	},
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func main() {
	checkCmd.Flags().String("content-type", "", "Content-type hint")
	historyCmd.Flags().Int("limit", 20, "Maximum records to list")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
