package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Command = cobra.Command

func Run(args []string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

var RootCmd = &cobra.Command{
	Use:          "postcounters",
	Short:        "keeps the view and like counters of a blog post in sync with the server.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringP("config", "c", "config.json", "config file name.")
	RootCmd.PersistentFlags().String("site-url", "", "blog site url, overrides ClientSettings.SiteURL.")
	RootCmd.PersistentFlags().String("post-id", "", "id of the post shown on the page.")
	RootCmd.PersistentFlags().String("csrf-token", "", "csrf token sent with every request.")
	RootCmd.PersistentFlags().String("cookie", "", "raw Cookie header to read the csrf token from.")

	viper.SetEnvPrefix("postcounters")
	viper.BindEnv("config")
	viper.BindEnv("site_url")
	viper.BindEnv("csrf_token")
	viper.BindEnv("cookie")

	viper.BindPFlag("config", RootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("site_url", RootCmd.PersistentFlags().Lookup("site-url"))
	viper.BindPFlag("post_id", RootCmd.PersistentFlags().Lookup("post-id"))
	viper.BindPFlag("csrf_token", RootCmd.PersistentFlags().Lookup("csrf-token"))
	viper.BindPFlag("cookie", RootCmd.PersistentFlags().Lookup("cookie"))
}
