package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/linskybing/formflow/internal/config"
	"github.com/spf13/viper"
)

// initConfig loads the same environment the API server reads, then lets
// the config file, FORMFLOW_* variables and flags override it.
func initConfig(path string) error {
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}

	if path != "" {
		viper.SetConfigFile(path)
		configDir := filepath.Dir(path)
		for _, envFile := range envFiles {
			_ = godotenv.Load(filepath.Join(configDir, envFile))
		}
	} else {
		viper.SetConfigName("formctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.formflow")
	}

	viper.SetEnvPrefix("FORMFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config.LoadConfig()
	applyOverrides()
	return nil
}

func applyOverrides() {
	if v := viper.GetString("store.backend"); v != "" {
		config.StoreBackend = strings.ToLower(v)
	}
	if v := viper.GetString("sqlite.path"); v != "" {
		config.SQLitePath = v
	}
	if v := viper.GetString("db.log_level"); v != "" {
		config.DbLogLevel = v
	}
	if v := viper.GetString("db.host"); v != "" {
		config.DbHost = v
	}
	if v := viper.GetString("db.name"); v != "" {
		config.DbName = v
	}
}
