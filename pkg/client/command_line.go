package client

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "OMSCTL"

// CustomHooks replace viper's default decode hooks, so they include those.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		SecondsDurationHookFunc(),
	)),
}

// SecondsDurationHookFunc decodes plain numbers into a time.Duration as seconds, e.g. "timeout: 5".
func SecondsDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

func AddOmsApiConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("omsUrl", "http://localhost:8084/api", "specify OMS core API url")
	viper.BindPFlag("omsUrl", rootCmd.PersistentFlags().Lookup("omsUrl"))
	rootCmd.PersistentFlags().String("token", "", "access token sent as X-Auth-Token")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	rootCmd.PersistentFlags().Bool("forceNoTls", false, "allow plain http to hosts other than localhost")
	viper.BindPFlag("forceNoTls", rootCmd.PersistentFlags().Lookup("forceNoTls"))
	rootCmd.PersistentFlags().Duration("timeout", DefaultTimeout, "timeout of a single request")
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	rootCmd.PersistentFlags().Int("retryMax", DefaultRetryMax, "retries of idempotent requests on transient failures")
	viper.BindPFlag("retryMax", rootCmd.PersistentFlags().Lookup("retryMax"))
}

// LoadCommandlineArgsFromConfigFile merges, in increasing priority, omsctl-defaults.yaml next to the
// executable, the given config file (or ~/.omsctl.yaml) and OMSCTL_* environment variables.
func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "error finding executable path")
	}
	viper.SetConfigFile(filepath.Join(filepath.Dir(exePath), "omsctl-defaults.yaml"))
	if err := viper.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
		case *os.PathError:
			// No default config is fine
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		// SetConfigFile above takes precedence over the search path, so clear it.
		viper.SetConfigFile("")
		viper.AddConfigPath(home)
		viper.SetConfigName(".omsctl")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for the default ~/.omsctl.yaml, which users need not have
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	}
	return nil
}

func ExtractCommandlineOmsApiConnectionDetails() (*ApiConnectionDetails, error) {
	return ExtractOmsApiConnectionDetails(viper.GetViper())
}

// ExtractOmsApiConnectionDetails reads connection details from v. Durations may be given as strings ("5s").
func ExtractOmsApiConnectionDetails(v *viper.Viper) (*ApiConnectionDetails, error) {
	details := &ApiConnectionDetails{
		Timeout:  DefaultTimeout,
		RetryMax: DefaultRetryMax,
	}
	if err := v.Unmarshal(details, CustomHooks...); err != nil {
		return nil, errors.Wrap(err, "error decoding connection details")
	}
	if details.Timeout <= 0 {
		details.Timeout = DefaultTimeout
	}
	return details, nil
}
