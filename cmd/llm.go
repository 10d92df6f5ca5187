package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumilearn/lumi/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the tutor model configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Println("No provider configured.")
			fmt.Println("Set GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY,")
			fmt.Println("or choose explicitly with LUMI_LLM_PROVIDER.")
			return nil
		}
		fmt.Println("provider:", cfg.Provider)
		switch cfg.Provider {
		case "anthropic":
			fmt.Println("model:   ", cfg.Anthropic.Model)
		case "openai":
			fmt.Println("model:   ", cfg.OpenAI.Model)
			if cfg.OpenAI.BaseURL != "" {
				fmt.Println("base url:", cfg.OpenAI.BaseURL)
			}
		case "gemini":
			fmt.Println("model:   ", cfg.Gemini.Model)
		}
		fmt.Println("timeout: ", cfg.Timeout)
		return nil
	},
}
