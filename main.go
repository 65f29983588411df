package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/live-labs/sealstore/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(os.Args[2:])
	case "keygen":
		runKeygen(os.Args[2:])
	case "put":
		runPut(os.Args[2:])
	case "get":
		runGet(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "ls":
		runLs(os.Args[2:])
	case "audit":
		runAudit(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "passwd":
		runPasswd(os.Args[2:])
	case "compact":
		runCompact(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Init()
}

func runKeygen(args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	noSeal := fs.Bool("no-seal", false, "Leave the private key unprotected on disk")
	saveKeyring := fs.Bool("keyring", false, "Save the passphrase to the OS keyring")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Keygen(!*noSeal, *saveKeyring)
}

func runPut(args []string) {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	id := fs.String("id", "", "Store under this object id (default: file basename)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealstore put [--id <id>] <file>")
		os.Exit(1)
	}
	cmd.Put(fs.Arg(0), *id)
}

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	out := fs.String("o", "", "Write plaintext to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealstore get [-o <file>] <id>")
		os.Exit(1)
	}
	cmd.Get(fs.Arg(0), *out)
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealstore rm <id>")
		os.Exit(1)
	}
	cmd.Rm(fs.Arg(0))
}

func runLs(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Ls()
}

func runAudit(args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Audit()
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runPasswd(args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Passwd()
}

func runCompact(args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Compact()
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealstore keyring <save|delete|status>")
		os.Exit(1)
	}
	switch args[0] {
	case "save":
		cmd.KeyringSave()
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: sealstore keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealstore completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("sealstore - Encrypted object storage with an audit trail")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sealstore <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a sealstore vault in current directory")
	fmt.Println("  keygen      Generate the vault keypair")
	fmt.Println("  put         Encrypt and store a file in the vault")
	fmt.Println("  get         Decrypt and verify an object from the vault")
	fmt.Println("  rm          Remove an object from the vault")
	fmt.Println("  ls          List stored objects")
	fmt.Println("  audit       Print the access trail")
	fmt.Println("  status      Show comprehensive vault status")
	fmt.Println("  passwd      Change the private key passphrase")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Manage passphrase in OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sealstore init                  # Create new vault")
	fmt.Println("  sealstore keygen                # Generate the keypair")
	fmt.Println("  sealstore put secrets.env       # Encrypt and store a file")
	fmt.Println("  sealstore get secrets.env       # Decrypt to stdout")
	fmt.Println()
	fmt.Println("Use 'sealstore help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("sealstore init")
		fmt.Println()
		fmt.Println("Creates a .sealstore vault in the current directory.")
		fmt.Println("The vault holds the object database, the audit trail and the keypair.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealstore init                   # Create new vault")
	case "keygen":
		fmt.Println("sealstore keygen [--no-seal] [--keyring]")
		fmt.Println()
		fmt.Println("Generates the RSA keypair used to wrap per-object keys.")
		fmt.Println("By default the private key is sealed under a passphrase before")
		fmt.Println("it touches disk. Key rotation is not supported: keygen refuses")
		fmt.Println("to overwrite an existing key.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --no-seal   Leave the private key unprotected on disk")
		fmt.Println("  --keyring   Save the passphrase to the OS keyring")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealstore keygen")
		fmt.Println("  sealstore keygen --keyring")
	case "put":
		fmt.Println("sealstore put [--id <id>] <file>")
		fmt.Println()
		fmt.Println("Encrypts a file with a fresh symmetric key, wraps the key for the")
		fmt.Println("vault's public key and stores the envelope. Only the public key is")
		fmt.Println("needed, so no passphrase is asked. Storing under an existing id")
		fmt.Println("replaces the previous envelope.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --id   Store under this object id (default: file basename)")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealstore put secrets.env")
		fmt.Println("  sealstore put --id prod/db-creds creds.json")
	case "get":
		fmt.Println("sealstore get [-o <file>] <id>")
		fmt.Println()
		fmt.Println("Retrieves an object, unwraps its key with the private key, decrypts")
		fmt.Println("and verifies the content digest. Asks for the passphrase unless it")
		fmt.Println("is available from SEALSTORE_PASSPHRASE or the OS keyring.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o   Write plaintext to this file instead of stdout")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealstore get secrets.env")
		fmt.Println("  sealstore get -o restored.env secrets.env")
	case "rm":
		fmt.Println("sealstore rm <id>")
		fmt.Println()
		fmt.Println("Removes an object from the vault and records the deletion.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  sealstore rm secrets.env")
	case "ls":
		fmt.Println("sealstore ls")
		fmt.Println()
		fmt.Println("Lists stored objects with their ciphertext size and storage time.")
		fmt.Println("Does not require a passphrase.")
	case "audit":
		fmt.Println("sealstore audit")
		fmt.Println()
		fmt.Println("Prints the access trail, oldest entry first. Every upload, download,")
		fmt.Println("deletion and key generation is recorded with a timestamp and actor.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  sealstore audit")
	case "status":
		fmt.Println("sealstore status")
		fmt.Println()
		fmt.Println("Shows comprehensive vault status including:")
		fmt.Println("  - Object count and last modification time")
		fmt.Println("  - Key material presence and protection")
		fmt.Println("  - Keyring state")
		fmt.Println()
		fmt.Println("Does not require a passphrase.")
	case "passwd":
		fmt.Println("sealstore passwd")
		fmt.Println()
		fmt.Println("Changes the passphrase protecting the private key.")
		fmt.Println("Requires the current passphrase. Stored envelopes are untouched;")
		fmt.Println("only the key sealing is redone.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  sealstore passwd")
	case "compact":
		fmt.Println("sealstore compact")
		fmt.Println()
		fmt.Println("Compacts the vault database to reclaim unused disk space.")
		fmt.Println("Useful after removing large objects.")
		fmt.Println()
		fmt.Println("Does not require a passphrase.")
	case "keyring":
		fmt.Println("sealstore keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the private key passphrase in the OS keyring.")
		fmt.Println("A saved passphrase lets 'get' and 'passwd' skip the prompt.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealstore keyring save")
		fmt.Println("  sealstore keyring status")
		fmt.Println("  sealstore keyring delete")
	case "completion":
		fmt.Println("sealstore completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(sealstore completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(sealstore completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  sealstore completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
