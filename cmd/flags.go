package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mzielinski/freqwatch/internal/config"
)

// addScanFlags registers the flags shared by commands that scan the
// directory tree.
func addScanFlags(fs *pflag.FlagSet) {
	fs.StringP("root", "r", config.DefaultRoot, "directory tree to scan for .txt files")
	fs.DurationP("interval", "i", config.DefaultInterval, "pause between scan passes")
	fs.IntP("consumers", "c", config.DefaultConsumers, "number of counting workers")
}

// bindScanFlags binds the shared flags to their configuration keys.
// Binding happens per command invocation, from PreRun, so the executing
// command's flag set is the one viper consults.
func bindScanFlags(fs *pflag.FlagSet) {
	_ = viper.BindPFlag("root", fs.Lookup("root"))
	_ = viper.BindPFlag("interval", fs.Lookup("interval"))
	_ = viper.BindPFlag("consumers", fs.Lookup("consumers"))
}
