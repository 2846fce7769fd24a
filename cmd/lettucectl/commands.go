package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/lettucelabs/lettucectl/internal/config"
	"github.com/lettucelabs/lettucectl/internal/controller"
	"github.com/lettucelabs/lettucectl/internal/discovery"
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/tui"
)

// Connection command flags
var (
	engineURL      string
	engineAPIKey   string
	credentialName string
	scanTimeout    int
	outputFormat   string
)

// Environment variables consulted when no connection flags are given
const (
	engineURLEnvVar = "LETTUCECTL_ENGINE"
	apiKeyEnvVar    = "LETTUCECTL_API_KEY"
)

func init() {
	// Common flags for Engine commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&engineURL, "engine", "", "Engine base URL (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&engineAPIKey, "api-key", "", "Engine API key")
	rootCmd.PersistentFlags().StringVar(&credentialName, "credential", "", "Saved credential label or id to connect with")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json, yaml)")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(credentialsCmd)
	rootCmd.AddCommand(discoverCmd)
}

// discoverCmd finds Engine instances on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Lettuce Engines on the network",
	Long: `Discover Lettuce Engine instances using mDNS/DNS-SD.

This command listens for mDNS broadcasts and displays every Engine
found with its address and advertised metadata.`,
	Example: `  # Scan for 10 seconds (default)
  lettucectl discover

  # Quick 3-second scan
  lettucectl discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Lettuce Engines (timeout: %ds)...\n\n", scanTimeout)

	instances, err := discovery.Scan(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Println("No Engines found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the Engine is running and on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --engine flag to specify the base URL manually")
		return nil
	}

	fmt.Printf("Found %d Engine(s):\n\n", len(instances))

	for i, inst := range instances {
		fmt.Printf("%d. %s\n", i+1, inst.Name)
		fmt.Printf("   Address: %s:%d\n", inst.IP, inst.Port)
		if v := inst.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		fmt.Println()
	}

	fmt.Println("Use 'lettucectl status --engine <url>' to inspect an Engine")
	fmt.Println("Use 'lettucectl' for the interactive TUI")

	return nil
}

// statusCmd shows the Engine's character roster
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Engine status and character roster",
	Long: `Display the Engine's health, version, and every installed
character with its loaded state.`,
	Example: `  # Auto-discover and show status
  lettucectl status

  # Specific Engine
  lettucectl status --engine http://192.168.1.42:8000`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("engine unreachable: %w", err)
	}

	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if outputFormat == "json" || outputFormat == "yaml" {
		return printDocument(map[string]any{
			"engine":     health,
			"characters": status.Characters,
		})
	}

	fmt.Printf("Engine %s (%s)\n\n", health.Status, health.Version)

	if len(status.Characters) == 0 {
		fmt.Println("No characters installed.")
		fmt.Println("Use 'lettucectl' and press 'n' to create one.")
		return nil
	}

	for _, c := range status.Characters {
		state := "unloaded"
		if c.Loaded {
			state = "loaded"
		}
		fmt.Printf("  %-20s %-10s %s", c.Slug, state, c.Name)
		if c.Role != "" {
			fmt.Printf(" (%s)", c.Role)
		}
		fmt.Println()
	}

	return nil
}

// usageCmd shows token usage counters
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show LLM usage counters",
	Long: `Display the Engine's cumulative LLM call and token counters,
broken down per character.`,
	Example: `  lettucectl usage
  lettucectl usage --format json`,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}

	usage, err := client.Usage(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get usage: %w", err)
	}

	if outputFormat == "json" || outputFormat == "yaml" {
		return printDocument(usage)
	}

	fmt.Printf("Total: %d calls, %d tokens in, %d tokens out (%d total)\n",
		usage.TotalCalls, usage.TotalInputTokens, usage.TotalOutputTokens, usage.TotalTokens)

	for _, c := range usage.Characters {
		fmt.Printf("\n%s: %d calls, %d tokens\n", c.Character, c.TotalCalls, c.TotalTokens)
		for _, m := range c.ByModel {
			fmt.Printf("  %-30s %6d calls  %8d in  %8d out\n",
				fmt.Sprintf("%s/%s", m.Backend, m.Model), m.Calls, m.InputTokens, m.OutputTokens)
		}
	}

	return nil
}

// charactersCmd groups the character management subcommands
var charactersCmd = &cobra.Command{
	Use:     "characters",
	Aliases: []string{"chars"},
	Short:   "Manage characters on the Engine",
}

func init() {
	charactersCmd.AddCommand(charactersListCmd)
	charactersCmd.AddCommand(charactersShowCmd)
	charactersCmd.AddCommand(charactersTemplateCmd)
	charactersCmd.AddCommand(charactersLoadCmd)
	charactersCmd.AddCommand(charactersUnloadCmd)
	charactersCmd.AddCommand(charactersUpdateCmd)
	charactersCmd.AddCommand(charactersDeleteCmd)
}

var charactersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		chars, err := client.ListCharacters(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list characters: %w", err)
		}

		if outputFormat == "json" || outputFormat == "yaml" {
			return printDocument(chars)
		}

		if len(chars) == 0 {
			fmt.Println("No characters installed.")
			return nil
		}

		for _, c := range chars {
			marker := " "
			if c.Loaded {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s", marker, c.Slug, c.Name)
			if c.Era != "" {
				fmt.Printf(", %s", c.Era)
			}
			fmt.Println()
		}
		fmt.Println("\n* = loaded")
		return nil
	},
}

var charactersShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a character's full card",
	Long: `Fetch and display a character's full document: identity,
personality, world knowledge, and per-character engine overrides.

Output is the Engine's JSON document. Save it to a file, edit it, and
apply it with 'characters update'.`,
	Example: `  lettucectl characters show ada-lovelace

  # Edit round-trip
  lettucectl characters show ada-lovelace > ada.json
  lettucectl characters update ada-lovelace --file ada.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		doc, err := client.FullCharacter(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch %q: %w", args[0], err)
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var charactersTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print an empty character document",
	Long: `Fetch the Engine's empty character scaffold with every field
present.

Use it as a reference for the fields 'characters update' accepts, or
create characters interactively with the TUI wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		doc, err := client.CharacterTemplate(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch template: %w", err)
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal template: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var charactersLoadCmd = &cobra.Command{
	Use:   "load <slug>",
	Short: "Load a character into memory",
	Long: `Load a character so it can chat and run its background loops.
Loading is idempotent; loading an already loaded character succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}
		if err := client.LoadCharacter(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to load %q: %w", args[0], err)
		}
		fmt.Printf("✓ %s loaded\n", args[0])
		return nil
	},
}

var charactersUnloadCmd = &cobra.Command{
	Use:   "unload <slug>",
	Short: "Unload a character from memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}
		if err := client.UnloadCharacter(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to unload %q: %w", args[0], err)
		}
		fmt.Printf("✓ %s unloaded\n", args[0])
		return nil
	},
}

var updateFile string

func init() {
	charactersUpdateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "Character document to apply (JSON; '-' reads stdin)")
	_ = charactersUpdateCmd.MarkFlagRequired("file")
}

var charactersUpdateCmd = &cobra.Command{
	Use:   "update <slug> --file <document.json>",
	Short: "Replace a character's card",
	Long: `Replace a character's full document with the one in the given
file.

The document is the same JSON shape 'characters show' prints; the
usual flow is show, edit, update. A loaded character picks up the new
card on its next reload.`,
	Example: `  lettucectl characters update ada-lovelace --file ada.json

  # Pipe an edited document through stdin
  lettucectl characters show ada-lovelace | jq '.era = "1850s"' | \
    lettucectl characters update ada-lovelace --file -`,
	Args: cobra.ExactArgs(1),
	RunE: runCharactersUpdate,
}

func runCharactersUpdate(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if updateFile == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(updateFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var doc engine.CharacterDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid character document: %w", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return fmt.Errorf("character document must have a name")
	}

	client, err := resolveClient()
	if err != nil {
		return err
	}
	if err := client.UpdateCharacter(context.Background(), args[0], doc); err != nil {
		return fmt.Errorf("failed to update %q: %w", args[0], err)
	}
	fmt.Printf("✓ %s updated\n", args[0])
	return nil
}

var charactersDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Permanently delete a character",
	Long: `Delete a character and all its memories from the Engine.

This cannot be undone. The command asks for confirmation unless --yes
is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCharactersDelete,
}

var deleteConfirmed bool

func init() {
	charactersDeleteCmd.Flags().BoolVar(&deleteConfirmed, "yes", false, "Skip the confirmation prompt")
}

func runCharactersDelete(cmd *cobra.Command, args []string) error {
	slug := args[0]

	if !deleteConfirmed {
		fmt.Printf("Delete character %q and all its memories? [y/N] ", slug)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client, err := resolveClient()
	if err != nil {
		return err
	}
	if err := client.DeleteCharacter(context.Background(), slug); err != nil {
		return fmt.Errorf("failed to delete %q: %w", slug, err)
	}
	fmt.Printf("✓ %s deleted\n", slug)
	return nil
}

// chatCmd sends a single message to a character
var chatCmd = &cobra.Command{
	Use:   "chat <slug> <message...>",
	Short: "Send a message to a character",
	Long: `Send one chat message to a loaded character and print the reply.

The message is sent with your default persona so the conversation
shares history with the interactive TUI. For a full conversation view
use the TUI instead.`,
	Example: `  lettucectl chat ada-lovelace "What are you working on?"

  # Words are joined, quoting is optional
  lettucectl chat ada-lovelace tell me about the analytical engine`,
	Args: cobra.MinimumNArgs(2),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	persona := resolvePersona()

	slug := args[0]
	message := strings.Join(args[1:], " ")

	resp, err := client.Chat(context.Background(), slug, engine.ChatRequest{
		Message:         message,
		UserID:          persona.UserID,
		UserName:        persona.Name,
		UserDescription: persona.Description,
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	name := resp.Character
	if name == "" {
		name = slug
	}
	if resp.Emotion != "" && resp.EmotionIntensity != nil {
		fmt.Printf("%s (%s %.1f):\n", name, resp.Emotion, *resp.EmotionIntensity)
	} else {
		fmt.Printf("%s:\n", name)
	}
	fmt.Println(resp.Response)
	return nil
}

// setupCmd launches the TUI directly into the setup wizard
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Launch the interactive setup wizard",
	Long: `Launch the first-run setup wizard for a fresh Engine.

The wizard walks through LLM provider configuration and Engine
settings, then marks setup complete. Saved LLM credentials from this
machine can be imported into the Engine along the way.`,
	Example: `  lettucectl setup
  lettucectl setup --engine http://192.168.1.42:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tui.ScreenSetup)
	},
}

func runTUI(start tui.Screen) error {
	client, err := resolveClient()
	if err != nil {
		return err
	}
	persona := resolvePersona()

	model := tui.NewAppModel(client, persona, start)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// configCmd groups the Engine configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect Engine configuration",
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the Engine's configuration document",
	Long: `Fetch and display the Engine's full configuration document.

API keys in the output are redacted by the Engine; the stored secrets
never leave it.`,
	Example: `  lettucectl config show
  lettucectl config show --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		doc, err := client.GetConfig(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get configuration: %w", err)
		}

		if outputFormat == "json" {
			return printDocument(doc)
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

// credentialsCmd groups the local credential subcommands
var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Manage locally stored credentials",
	Long: `Manage credentials stored in the local configuration file.

Credentials with provider "` + config.EngineProviderID + `" are Engine
connections; credentials with an LLM provider id (openai, anthropic,
openrouter, ollama) can be imported into an Engine during setup.`,
}

var (
	credProvider string
	credLabel    string
	credBaseURL  string
	credKey      string
)

func init() {
	credentialsAddCmd.Flags().StringVar(&credProvider, "provider", config.EngineProviderID, "Provider id for the credential")
	credentialsAddCmd.Flags().StringVar(&credLabel, "label", "", "Human readable label")
	credentialsAddCmd.Flags().StringVar(&credBaseURL, "base-url", "", "Base URL (Engine address or provider endpoint)")
	credentialsAddCmd.Flags().StringVar(&credKey, "key", "", "API key (omit to be prompted without echo)")

	credentialsCmd.AddCommand(credentialsAddCmd)
	credentialsCmd.AddCommand(credentialsListCmd)
}

var credentialsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a credential locally",
	Example: `  # Save an Engine connection
  lettucectl credentials add --base-url http://192.168.1.42:8000 --label study

  # Save an OpenAI key for later import (prompts for the key)
  lettucectl credentials add --provider openai --label work`,
	RunE: runCredentialsAdd,
}

func runCredentialsAdd(cmd *cobra.Command, args []string) error {
	if credProvider != config.EngineProviderID && !engine.IsKnownProvider(credProvider) {
		return fmt.Errorf("unknown provider %q", credProvider)
	}
	if credProvider == config.EngineProviderID && credBaseURL == "" {
		return fmt.Errorf("--base-url is required for Engine credentials")
	}

	key := credKey
	if key == "" && credProvider != "ollama" {
		fmt.Print("API key (input hidden): ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = strings.TrimSpace(string(raw))
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cred := registry.AddCredential(&config.Credential{
		ProviderID: credProvider,
		Label:      credLabel,
		BaseURL:    credBaseURL,
		APIKey:     key,
	})

	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Credential saved (id: %s)\n", cred.ID)
	return nil
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if len(registry.Credentials) == 0 {
			fmt.Println("No credentials stored.")
			fmt.Println("Use 'lettucectl credentials add' to save one.")
			return nil
		}

		for _, c := range registry.Credentials {
			label := c.Label
			if label == "" {
				label = "(unlabeled)"
			}
			fmt.Printf("%-20s %-16s %-32s key: %s\n", label, c.ProviderID, c.BaseURL, redactKey(c.APIKey))
		}
		return nil
	},
}

// redactKey shows just enough of a stored key to tell entries apart
func redactKey(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// printDocument renders any response document in the selected format
func printDocument(doc any) error {
	if outputFormat == "yaml" {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// resolveClient builds an Engine client from, in order: the --engine
// flag, the LETTUCECTL_ENGINE environment variable, a saved Engine
// credential, and finally mDNS discovery.
func resolveClient() (*engine.Client, error) {
	if engineURL != "" {
		return engine.NewClient(engineURL, engineAPIKey), nil
	}

	if url := os.Getenv(engineURLEnvVar); url != "" {
		key := engineAPIKey
		if key == "" {
			key = os.Getenv(apiKeyEnvVar)
		}
		return engine.NewClient(url, key), nil
	}

	registry, err := config.LoadRegistry()
	if err == nil {
		cred, err := selectEngineCredential(registry)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			registry.TouchCredential(cred.ID)
			// LastUsed is advisory; ignore save failures
			_ = registry.Save()
			key := engineAPIKey
			if key == "" {
				key = cred.APIKey
			}
			return engine.NewClient(cred.BaseURL, key), nil
		}
	}

	// Last resort: look for exactly one Engine on the LAN
	fmt.Println("No Engine configured, attempting auto-discovery...")
	instances, err := discovery.QuickScan()
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	if len(instances) == 0 {
		return nil, fmt.Errorf("no Engines found. Use --engine to specify the base URL manually")
	}

	if len(instances) > 1 {
		fmt.Printf("Found %d Engines:\n", len(instances))
		for i, inst := range instances {
			fmt.Printf("%d. %s (%s:%d)\n", i+1, inst.Name, inst.IP, inst.Port)
		}
		return nil, fmt.Errorf("multiple Engines found. Use --engine to specify which one")
	}

	inst := instances[0]
	fmt.Printf("Found Engine: %s (%s:%d)\n\n", inst.Name, inst.IP, inst.Port)
	return engine.NewClient(inst.BaseURL(), engineAPIKey), nil
}

// selectEngineCredential picks the saved Engine connection to use.
// An explicit --credential wins; otherwise a single saved connection
// is used automatically and several require disambiguation. No saved
// connections at all is not an error, it falls through to discovery.
func selectEngineCredential(registry *config.Registry) (*config.Credential, error) {
	creds := registry.EngineCredentials()

	if credentialName != "" {
		for _, c := range creds {
			if c.ID == credentialName || c.Label == credentialName {
				return c, nil
			}
		}
		return nil, fmt.Errorf("no saved Engine credential matches %q", credentialName)
	}

	switch len(creds) {
	case 0:
		return nil, nil
	case 1:
		return creds[0], nil
	default:
		return nil, fmt.Errorf("%d Engine credentials saved. Use --credential to pick one", len(creds))
	}
}

// resolvePersona loads the chat identity from the local registry,
// falling back to an anonymous one when no configuration exists.
// The generated user id is persisted so chat history stays attached
// to one identity across sessions.
func resolvePersona() controller.Persona {
	registry, err := config.LoadRegistry()
	if err != nil {
		return controller.DefaultPersona()
	}

	hadID := registry.UserID != ""
	persona := controller.Persona{UserID: registry.EnsureUserID(), Name: "User"}
	if p := registry.DefaultPersona(); p != nil {
		persona.Name = p.Title
		persona.Description = p.Description
	}
	if !hadID {
		_ = registry.Save()
	}
	return persona
}
