package config

import "github.com/spf13/cobra"

// CompleteOutputFormat provides shell completion candidates for the --output flag.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return KeyCompletions("output"), cobra.ShellCompDirectiveNoFileComp
}

// CompleteDefineFormat provides shell completion candidates for the --format flag.
func CompleteDefineFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return KeyCompletions("format"), cobra.ShellCompDirectiveNoFileComp
}

// RegisterFlagCompletions wires flag completions on cmd's persistent flags.
func RegisterFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", CompleteDefineFormat)
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
}
