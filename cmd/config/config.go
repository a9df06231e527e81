package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovetools/foldernote/pkg/service"
	"github.com/grovetools/foldernote/pkg/settings"
)

var (
	cfgFile       string
	VaultOverride string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "foldernote")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.SetConfigFile(filepath.Join(configDir, "config.yaml"))
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FOLDERNOTE")

	// Set defaults
	viper.SetDefault("vault_dir", filepath.Join(os.Getenv("HOME"), "notes"))
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "foldernote"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	settings.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		// Do not print this in normal operation, it's noisy.
		// fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func InitService() (*service.Service, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.

	vaultDir := viper.GetString("vault_dir")
	if VaultOverride != "" {
		vaultDir = VaultOverride
	}

	config := &service.Config{
		VaultDir:   vaultDir,
		DataDir:    viper.GetString("data_dir"),
		Editor:     viper.GetString("editor"),
		Resolution: settings.Load(viper.GetViper()),
	}

	svc, err := service.New(config, logger)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/foldernote/config.yaml)")
	cmd.PersistentFlags().StringVarP(&VaultOverride, "vault", "V", "", "Override the vault directory")
}
