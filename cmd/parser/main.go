package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/addressparser/internal/config"
	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/parser"
)

var store *gazetteer.Postgres

func main() {
	config.LoadEnv()

	var err error
	store, err = gazetteer.OpenPostgres()
	if err != nil {
		log.Fatalf("Failed to connect to gazetteer database: %v", err)
	}
	defer store.Close()

	rootCmd := &cobra.Command{
		Use:   "addressparser",
		Short: "UK free-text address extraction engine",
		Long:  `Extracts typed fields from unstructured UK postal addresses, resolving streets, areas and postcodes against reference gazetteers`,
	}

	rootCmd.AddCommand(createParseCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createParseCmd creates the command that parses addresses given as
// arguments, or one per stdin line when none are given.
func createParseCmd() *cobra.Command {
	var asJSON bool
	var debugFlag bool

	cmd := &cobra.Command{
		Use:   "parse [address...]",
		Short: "Parse one or more free-text addresses",
		Run: func(cmd *cobra.Command, args []string) {
			settings := config.FromEnv()
			settings.Debug = settings.Debug || debugFlag

			p, err := parser.New(store, settings)
			if err != nil {
				log.Fatalf("Failed to initialize parser: %v", err)
			}

			addresses := args
			if len(addresses) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						addresses = append(addresses, line)
					}
				}
				if err := scanner.Err(); err != nil {
					log.Fatalf("Failed to read stdin: %v", err)
				}
			}

			for _, address := range addresses {
				parsed, err := p.Parse(address)
				if err != nil {
					log.Fatalf("Parse failed: %v", err)
				}
				if err := render(parsed, asJSON); err != nil {
					log.Fatalf("Failed to render result: %v", err)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON instead of YAML")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "Trace extraction stages")
	return cmd
}

// createPingCmd creates a command to test gazetteer connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test gazetteer database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Database connection successful!")

			var count int
			if err := store.DB().QueryRow("SELECT COUNT(*) FROM postcodes").Scan(&count); err != nil {
				log.Printf("Error counting postcodes: %v", err)
			} else {
				fmt.Printf("Postcodes loaded: %d\n", count)
			}

			if err := store.DB().QueryRow("SELECT COUNT(*) FROM roads").Scan(&count); err != nil {
				log.Printf("Error counting roads: %v", err)
			} else {
				fmt.Printf("Roads loaded: %d\n", count)
			}
		},
	}
}

func render(parsed *parser.ParsedAddress, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	out, err := yaml.Marshal(parsed)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
