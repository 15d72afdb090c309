package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/textseal/cmd"
	"github.com/illarion/textseal/internal/config"
	"github.com/illarion/textseal/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	verbose := false
	if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	switch args[0] {
	case "encrypt":
		runEncrypt(cfg, args[1:])
	case "decrypt":
		runDecrypt(cfg, args[1:])
	case "profiles":
		cmd.Profiles(cfg)
	case "init":
		runInit(cfg, args[1:])
	case "put":
		runPut(ctx, cfg, args[1:])
	case "get":
		runGet(ctx, cfg, args[1:])
	case "rm":
		runRm(ctx, cfg, args[1:])
	case "ls", "status":
		runStatus(ctx, cfg, args[0], args[1:])
	case "passwd":
		runPasswd(cfg, args[1:])
	case "diff":
		runDiff(ctx, cfg, args[1:])
	case "compact":
		runCompact(cfg, args[1:])
	case "keyring":
		runKeyring(cfg, args[1:])
	case "completion":
		runCompletion(args[1:])
	case "help", "-h", "--help":
		if len(args) <= 1 {
			printUsage()
			return
		}
		printCommandHelp(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runEncrypt(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	profile := fs.String("profile", "", "Cipher profile")
	parseFlags(fs, args)

	cmd.Encrypt(cfg, *profile, fs.Args())
}

func runDecrypt(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	profile := fs.String("profile", "", "Cipher profile")
	lenient := fs.Bool("lenient", false, "Print nothing instead of failing on malformed input")
	parseFlags(fs, args)

	cmd.Decrypt(cfg, *profile, *lenient, fs.Args())
}

func runInit(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	profile := fs.String("profile", "", "Default cipher profile for the vault")
	parseFlags(fs, args)

	cmd.Init(cfg, *profile)
}

func runPut(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	profile := fs.String("profile", "", "Cipher profile (default: vault profile)")
	file := fs.String("file", "", "Read text from file")
	parseFlags(fs, args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textseal put [--profile P] [--file F] <name> [text]")
		os.Exit(1)
	}
	if *file != "" && fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: --file and text arguments are mutually exclusive")
		os.Exit(1)
	}
	cmd.Put(ctx, cfg, *profile, *file, fs.Arg(0), fs.Args()[1:])
}

func runGet(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: textseal get <name>")
		os.Exit(1)
	}
	cmd.Get(ctx, cfg, fs.Arg(0))
}

func runRm(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Remove(ctx, cfg, fs.Args())
}

func runStatus(ctx context.Context, cfg *config.Config, name string, args []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Status(ctx, cfg)
}

func runPasswd(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Passwd(cfg)
}

func runDiff(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	parseFlags(fs, args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textseal diff <name> <file>")
		os.Exit(1)
	}
	cmd.Diff(ctx, cfg, fs.Arg(0), fs.Arg(1))
}

func runCompact(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Compact(cfg)
}

func runKeyring(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Keyring(cfg, fs.Arg(0))
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: textseal completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("textseal - password-based text encryption")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  textseal [-v|--verbose] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  encrypt     Encrypt text to a base64 blob")
	fmt.Println("  decrypt     Decrypt a base64 blob")
	fmt.Println("  profiles    List cipher profiles")
	fmt.Println("  init        Create a .textseal vault in the current directory")
	fmt.Println("  put         Seal text into the vault under a name")
	fmt.Println("  get         Print a sealed entry")
	fmt.Println("  rm          Remove entries from the vault")
	fmt.Println("  ls, status  Show vault status")
	fmt.Println("  passwd      Change vault password")
	fmt.Println("  diff        Compare an entry with a local file")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Manage password in OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TEXTSEAL_PASSWORD   Password (skips the prompt)")
	fmt.Println("  TEXTSEAL_PROFILE    Default cipher profile (aes-256-cbc)")
	fmt.Println("  TEXTSEAL_DIR        Vault directory (.)")
	fmt.Println("  TEXTSEAL_LOG_LEVEL  Log level (warn)")
	fmt.Println("  TEXTSEAL_ENV_FILE   Dotenv file to load (.textseal.env)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  echo hello | textseal encrypt           # Print a sealed blob")
	fmt.Println("  textseal decrypt <blob>                 # Print the plaintext")
	fmt.Println("  textseal put --file notes.txt notes     # Seal a file into the vault")
	fmt.Println("  textseal get notes                      # Print it back")
	fmt.Println()
	fmt.Println("Use 'textseal help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "encrypt":
		fmt.Println("textseal encrypt [--profile P] [text]")
		fmt.Println()
		fmt.Println("Encrypts text with a password and prints base64(IV || ciphertext).")
		fmt.Println("Reads stdin when no text is given. Every run uses a fresh random IV,")
		fmt.Println("so the same input gives a different blob each time.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  textseal encrypt 'meet at noon'")
		fmt.Println("  textseal encrypt --profile chacha20 < message.txt")
	case "decrypt":
		fmt.Println("textseal decrypt [--profile P] [--lenient] [blob]")
		fmt.Println()
		fmt.Println("Decrypts a blob produced by 'textseal encrypt' with the same profile.")
		fmt.Println("Reads stdin when no blob is given.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --profile P   Cipher profile used to encrypt")
		fmt.Println("  --lenient     Print nothing and exit 0 for malformed or undecryptable input")
	case "profiles":
		fmt.Println("textseal profiles")
		fmt.Println()
		fmt.Println("Lists the supported cipher profiles with key and IV lengths.")
	case "init":
		fmt.Println("textseal init [--profile P]")
		fmt.Println()
		fmt.Println("Creates a .textseal vault file in the vault directory.")
		fmt.Println("Prompts for a password that will be used for encryption.")
		fmt.Println("The password is not stored anywhere - you must remember it.")
	case "put":
		fmt.Println("textseal put [--profile P] [--file F] <name> [text]")
		fmt.Println()
		fmt.Println("Seals text and stores it under name, replacing an existing entry.")
		fmt.Println("Text comes from --file, the remaining arguments, or stdin.")
		fmt.Println("Files must be inside the vault directory.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  textseal put db-url 'postgres://...'")
		fmt.Println("  textseal put --profile xchacha20 --file notes.txt notes")
	case "get":
		fmt.Println("textseal get <name>")
		fmt.Println()
		fmt.Println("Decrypts the entry and prints it to stdout.")
	case "rm":
		fmt.Println("textseal rm <name> [name...]")
		fmt.Println()
		fmt.Println("Removes entries from the vault. Nothing is removed if any name is unknown.")
	case "ls", "status":
		fmt.Println("textseal status")
		fmt.Println()
		fmt.Println("Shows vault path, default profile, keyring state and the entry list.")
		fmt.Println("'ls' is an alias. Does not require a password.")
	case "passwd":
		fmt.Println("textseal passwd")
		fmt.Println()
		fmt.Println("Changes the vault password and re-seals every entry.")
		fmt.Println("Updates the keyring if the password was saved there.")
	case "diff":
		fmt.Println("textseal diff <name> <file>")
		fmt.Println()
		fmt.Println("Shows a line diff between a sealed entry (-) and a local file (+).")
	case "compact":
		fmt.Println("textseal compact")
		fmt.Println()
		fmt.Println("Compacts the .textseal database to reclaim unused disk space.")
		fmt.Println("This is automatically done after 'rm' and 'passwd'.")
		fmt.Println("Does not require a password.")
	case "keyring":
		fmt.Println("textseal keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Stores the vault password in the OS keyring so commands stop prompting.")
	case "completion":
		fmt.Println("textseal completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(textseal completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(textseal completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  textseal completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
