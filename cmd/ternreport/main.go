package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tern/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ternreport",
	Short: "Tern compiler diagnostics toolchain",
	Long:  `Inspect, render and aggregate report dumps produced by the tern compiler`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-reports", 100, "maximum number of reports to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
