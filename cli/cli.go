package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"tourism/composer"
)

var exitWords = map[string]bool{"exit": true, "quit": true, "bye": true}

const separator = "======================================================================"

// New builds the root command: an interactive prompt loop that runs one
// query per line until the user types an exit word.
func New(service composer.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tourism",
		Short: "Weather and tourist attraction lookup for any place",
		Long: "Interactive lookup tool: type a place or a question about it and get\n" +
			"current weather plus nearby attractions in one summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			printWelcome(cmd)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				cmd.Printf("\nEnter your query: ")
				if !scanner.Scan() {
					cmd.Printf("\n")
					return scanner.Err()
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if exitWords[strings.ToLower(line)] {
					cmd.Println("Goodbye!")
					return nil
				}

				cmd.Println("\nFetching information, please wait...")
				summary, err := service.Handle(cmd.Context(), line)

				cmd.Println(separator)
				if err != nil {
					cmd.Println(err)
				} else {
					printSummary(cmd, summary)
				}
				cmd.Println(separator)
			}
		},
	}

	return cmd
}

func printWelcome(cmd *cobra.Command) {
	cmd.Println("=== Welcome to the tourism lookup tool! ===")
	cmd.Println("Ask about places to visit or weather in any location.")
	cmd.Println("Examples:")
	cmd.Println("- I'm going to go to Bangalore, let's plan my trip")
	cmd.Println("- What's the weather in Mumbai?")
	cmd.Println("- What can I see in Delhi?")
	cmd.Println("Type 'exit' to quit.")
}

func printSummary(cmd *cobra.Command, summary composer.Summary) {
	cmd.Printf("Location: %s\n", summary.Headline())

	if summary.Weather != nil {
		cmd.Printf("Currently %s, %.1f°C\n", summary.Weather.Description, summary.Weather.TemperatureC)
	} else {
		cmd.Println("Weather information not available")
	}

	if len(summary.Attractions) == 0 {
		cmd.Printf("No tourist attractions found near %s\n", summary.ShortName())
		return
	}

	cmd.Println("Places you can visit:")
	for i, attraction := range summary.Attractions {
		cmd.Printf("%d. %s (%s)\n", i+1, attraction.Name, attraction.Category)
	}
}
