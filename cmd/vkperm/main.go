package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/viking-permd/pkg/logging"
	"github.com/mmcdole/viking-permd/pkg/permissions"
	"github.com/mmcdole/viking-permd/pkg/principals"
	"github.com/mmcdole/viking-permd/pkg/status"
)

var (
	version = "dev" // Will be set during build
	cfgFile string
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "vkperm",
	Short:         "VikingMUD permission engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `VikingMUD permission engine (vkperm) - group-based permission checks

vkperm resolves group inheritance into flattened permission sets and answers
whether a sender holds a dotted, hierarchical permission string, with
wildcard matching at each level.

Configuration file must be in JSON format with the following structure:
{
    "groups_file_path": "/mud/lib/data/groups.yml",
    "player_dir_path": "/mud/lib/players",
    "player_cache_time": 60,
    "status_dir": "/mud/lib/status/vkperm",
    "status_interval": 30,
    "log_path": "/mud/lib/log/vkperm.log",
    "debug": false
}`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (required)")
	rootCmd.AddCommand(checkCmd, groupsCmd, initCmd, watchCmd)
}

// setup loads the config, initializes logging, and builds a loaded engine
func setup() (*Config, *permissions.Engine, error) {
	if cfgFile == "" {
		return nil, nil, fmt.Errorf("config file is required (use --config)")
	}
	if !filepath.IsAbs(cfgFile) {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get absolute path: %v", err)
		}
		cfgFile = abs
	}

	var config Config
	if err := LoadConfig(cfgFile, &config); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %v", err)
	}

	level := logging.LogLevelInfo
	if config.Debug {
		level = logging.LogLevelDebug
	}
	if err := logging.Initialize(config.LogPath, level); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %v", err)
	}

	var resolver principals.Resolver
	if config.PlayerDirPath != "" {
		fileSource := principals.NewFileSource(config.PlayerDirPath)
		resolver = principals.NewRepository(fileSource, time.Duration(config.PlayerCacheTime)*time.Second)
	}
	resolver = principals.NewReservedResolver(resolver)

	engine := permissions.NewEngine(permissions.NewFileSource(config.GroupsFilePath), resolver)
	if err := engine.Create(); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap group definitions: %v", err)
	}
	if err := engine.Reload(); err != nil {
		return nil, nil, fmt.Errorf("failed to load group definitions: %v", err)
	}
	return &config, engine, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <sender> <permission>",
	Short: "Check whether a sender holds a permission",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, engine, err := setup()
		if err != nil {
			return err
		}

		if engine.CheckPermission(args[0], args[1]) {
			fmt.Println("granted")
			return nil
		}
		fmt.Println("denied")
		os.Exit(1)
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Print the flattened group registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, engine, err := setup()
		if err != nil {
			return err
		}

		for _, group := range engine.Registry().Groups() {
			marker := ""
			if group.IsDefault {
				marker = " (default)"
			}
			fmt.Printf("%s%s\n", group.Name, marker)
			for _, inherited := range group.Inheritance {
				fmt.Printf("  inherits %s\n", inherited)
			}
			for perm := range group.Combined {
				fmt.Printf("  %s\n", perm)
			}
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the default group definitions if none exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _, err := setup()
		if err != nil {
			return err
		}

		fmt.Printf("group definitions ready at %s\n", config.GroupsFilePath)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload group definitions whenever the file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, engine, err := setup()
		if err != nil {
			return err
		}

		watcher, err := permissions.NewWatcher(engine, config.GroupsFilePath)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %v", err)
		}
		defer watcher.Close()

		if config.StatusDir != "" {
			writer, err := status.New(config.StatusDir, time.Duration(config.StatusInterval)*time.Second, version, engine)
			if err != nil {
				return fmt.Errorf("failed to create status writer: %v", err)
			}
			if err := writer.WriteStartFile(); err != nil {
				return err
			}
			writer.StartHeartbeat()
			defer writer.Stop()
		}

		fmt.Printf("Watching %s (vkperm %s)\n", config.GroupsFilePath, version)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		return nil
	},
}
